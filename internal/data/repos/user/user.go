package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID string) (*domain.User, error)
	Exists(ctx context.Context, tx *gorm.DB, userID string) (bool, error)
	// Delete removes the user and everything the user owns: sessions,
	// rounds, recommended results and cart rows. The cascade is explicit
	// so it behaves identically on every storage engine.
	Delete(ctx context.Context, tx *gorm.DB, userID string) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, u *domain.User) (*domain.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID string) (*domain.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var u domain.User
	err := transaction.WithContext(ctx).Where("id = ?", userID).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) Exists(ctx context.Context, tx *gorm.DB, userID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, userID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	db := transaction.WithContext(ctx)

	sessionIDs := db.Model(&domain.Session{}).Select("id").Where("user_id = ?", userID)
	roundIDs := db.Model(&domain.Round{}).Select("id").Where("session_id IN (?)", sessionIDs)

	if err := db.Where("round_id IN (?)", roundIDs).
		Delete(&domain.RoundRecommendedResult{}).Error; err != nil {
		return false, err
	}
	if err := db.Where("session_id IN (?)", sessionIDs).
		Delete(&domain.Round{}).Error; err != nil {
		return false, err
	}
	if err := db.Where("user_id = ?", userID).Delete(&domain.Session{}).Error; err != nil {
		return false, err
	}
	if err := db.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
		return false, err
	}

	res := db.Where("id = ?", userID).Delete(&domain.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
