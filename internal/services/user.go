package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/data/repos"
	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

// UserService manages the locally mirrored external identities. Users are
// minted elsewhere; Register only records the reference and is idempotent.
type UserService interface {
	Register(ctx context.Context, userID string, userName *string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	// Delete removes the user and cascades over every owned row: sessions,
	// rounds, recommendation results and cart items.
	Delete(ctx context.Context, userID string) error
}

type userService struct {
	db    *gorm.DB
	log   *logger.Logger
	users repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, users repos.UserRepo) UserService {
	return &userService{
		db:    db,
		log:   baseLog.With("service", "UserService"),
		users: users,
	}
}

func (s *userService) Register(ctx context.Context, userID string, userName *string) (*domain.User, error) {
	existing, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing != nil {
		return existing, nil
	}
	created, err := s.users.Create(ctx, nil, &domain.User{ID: userID, UserName: userName})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("User registered", "user_id", userID)
	return created, nil
}

func (s *userService) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if u == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %q not found", userID))
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = s.users.Delete(ctx, tx, userID)
		return err
	})
	if err != nil {
		return apierr.Internal(err)
	}
	if !deleted {
		return apierr.NotFound("user_not_found", fmt.Errorf("user %q not found", userID))
	}
	s.log.Info("User deleted with owned rows", "user_id", userID)
	return nil
}
