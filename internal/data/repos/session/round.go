package session

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type RoundRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, selectedPaletteIDs []int, userComment *string) (*domain.Round, error)
	GetByID(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) (*domain.Round, error)
	// LatestForSession returns the most recent round of the session,
	// skipping excludeID (the round being built). Nil when the session has
	// no prior rounds.
	LatestForSession(ctx context.Context, tx *gorm.DB, sessionID, excludeID uuid.UUID) (*domain.Round, error)
	// Delete removes the round and its results. Used for rollback after a
	// failed external call, so a half-built round is never client-visible.
	Delete(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) (bool, error)
}

type roundRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoundRepo(db *gorm.DB, baseLog *logger.Logger) RoundRepo {
	return &roundRepo{db: db, log: baseLog.With("repo", "RoundRepo")}
}

func (rr *roundRepo) Create(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, selectedPaletteIDs []int, userComment *string) (*domain.Round, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	raw, err := json.Marshal(selectedPaletteIDs)
	if err != nil {
		return nil, err
	}
	round := &domain.Round{
		ID:                 uuid.New(),
		SessionID:          sessionID,
		SelectedPaletteIDs: datatypes.JSON(raw),
		UserComment:        userComment,
	}
	if err := transaction.WithContext(ctx).Create(round).Error; err != nil {
		return nil, err
	}
	return round, nil
}

func (rr *roundRepo) GetByID(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) (*domain.Round, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var r domain.Round
	err := transaction.WithContext(ctx).Where("id = ?", roundID).First(&r).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (rr *roundRepo) LatestForSession(ctx context.Context, tx *gorm.DB, sessionID, excludeID uuid.UUID) (*domain.Round, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var r domain.Round
	q := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&r).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (rr *roundRepo) Delete(ctx context.Context, tx *gorm.DB, roundID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	db := transaction.WithContext(ctx)

	if err := db.Where("round_id = ?", roundID).
		Delete(&domain.RoundRecommendedResult{}).Error; err != nil {
		return false, err
	}
	res := db.Where("id = ?", roundID).Delete(&domain.Round{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
