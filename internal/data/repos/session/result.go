package session

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type ResultRepo interface {
	// BulkCreate inserts one row per recommended item, preserving the
	// caller-assigned rank order.
	BulkCreate(ctx context.Context, tx *gorm.DB, results []*domain.RoundRecommendedResult) ([]*domain.RoundRecommendedResult, error)
	ListByRound(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) ([]*domain.RoundRecommendedResult, error)
	CountByRound(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) (int64, error)
	// UpdateAction records a like/dislike against one image of a round.
	UpdateAction(ctx context.Context, tx *gorm.DB, roundID uuid.UUID, imageID string, actionTypeID int, dislikeDesc *string) (bool, error)
	// SetInCartByUserImage keeps the denormalized is_in_cart flag in step
	// with the cart across every round the user's image appears in.
	SetInCartByUserImage(ctx context.Context, tx *gorm.DB, userID, imageID string, inCart bool) error
}

type resultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	return &resultRepo{db: db, log: baseLog.With("repo", "ResultRepo")}
}

func (rr *resultRepo) BulkCreate(ctx context.Context, tx *gorm.DB, results []*domain.RoundRecommendedResult) ([]*domain.RoundRecommendedResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(results) == 0 {
		return []*domain.RoundRecommendedResult{}, nil
	}
	for _, r := range results {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *resultRepo) ListByRound(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) ([]*domain.RoundRecommendedResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*domain.RoundRecommendedResult
	if err := transaction.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("rank_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *resultRepo) CountByRound(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.RoundRecommendedResult{}).
		Where("round_id = ?", roundID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *resultRepo) UpdateAction(ctx context.Context, tx *gorm.DB, roundID uuid.UUID, imageID string, actionTypeID int, dislikeDesc *string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	updates := map[string]any{"action_type_id": actionTypeID}
	if dislikeDesc != nil {
		updates["dislike_desc"] = *dislikeDesc
	}
	res := transaction.WithContext(ctx).
		Model(&domain.RoundRecommendedResult{}).
		Where("round_id = ? AND image_id = ?", roundID, imageID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (rr *resultRepo) SetInCartByUserImage(ctx context.Context, tx *gorm.DB, userID, imageID string, inCart bool) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	db := transaction.WithContext(ctx)

	sessionIDs := db.Model(&domain.Session{}).Select("id").Where("user_id = ?", userID)
	roundIDs := db.Model(&domain.Round{}).Select("id").Where("session_id IN (?)", sessionIDs)

	return db.Model(&domain.RoundRecommendedResult{}).
		Where("image_id = ? AND round_id IN (?)", imageID, roundIDs).
		Update("is_in_cart", inCart).Error
}
