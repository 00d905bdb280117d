package session

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, s *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*domain.Session, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.Session, error)
	// Delete removes the session together with its rounds and results.
	Delete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (bool, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, s *domain.Session) (*domain.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (sr *sessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*domain.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var s domain.Session
	err := transaction.WithContext(ctx).Where("id = ?", sessionID).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (sr *sessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*domain.Session
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sessionRepo) Delete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	db := transaction.WithContext(ctx)

	roundIDs := db.Model(&domain.Round{}).Select("id").Where("session_id = ?", sessionID)
	if err := db.Where("round_id IN (?)", roundIDs).
		Delete(&domain.RoundRecommendedResult{}).Error; err != nil {
		return false, err
	}
	if err := db.Where("session_id = ?", sessionID).Delete(&domain.Round{}).Error; err != nil {
		return false, err
	}

	res := db.Where("id = ?", sessionID).Delete(&domain.Session{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
