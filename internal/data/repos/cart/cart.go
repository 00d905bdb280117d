package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type CartRepo interface {
	// Upsert adds the image to the user's cart, or overwrites the stored
	// link and refreshes update_at when the (user, image) pair exists.
	Upsert(ctx context.Context, tx *gorm.DB, userID, imageID string, link *string) (*domain.CartItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) (*domain.CartItem, error)
	// ListByUser returns the user's cart, most recently touched first.
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.CartItem, error)
	Delete(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) (bool, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (cr *cartRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, imageID string, link *string) (*domain.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	db := transaction.WithContext(ctx)

	var existing domain.CartItem
	err := db.Where("user_id = ? AND image_id = ?", userID, imageID).First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == nil {
		updates := map[string]any{"update_at": time.Now().UTC()}
		if link != nil {
			updates["link"] = *link
		}
		if err := db.Model(&domain.CartItem{}).
			Where("id = ?", existing.ID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
		return cr.GetByID(ctx, tx, existing.ID)
	}

	item := &domain.CartItem{
		ID:      uuid.New(),
		UserID:  userID,
		ImageID: imageID,
		Link:    link,
	}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (cr *cartRepo) GetByID(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) (*domain.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var item domain.CartItem
	err := transaction.WithContext(ctx).Where("id = ?", cartID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (cr *cartRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var items []*domain.CartItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("update_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (cr *cartRepo) Delete(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	res := transaction.WithContext(ctx).Where("id = ?", cartID).Delete(&domain.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
