package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/data/repos"
	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type CartService interface {
	// Add upserts by (user, image): repeated adds keep a single row, the
	// link and update timestamp reflecting the latest call.
	Add(ctx context.Context, userID, imageID string, link *string) (*domain.CartItem, error)
	List(ctx context.Context, userID string) ([]*domain.CartItem, error)
	Remove(ctx context.Context, cartID uuid.UUID) error
}

type cartService struct {
	db      *gorm.DB
	log     *logger.Logger
	users   repos.UserRepo
	cart    repos.CartRepo
	results repos.ResultRepo
}

func NewCartService(db *gorm.DB, baseLog *logger.Logger, users repos.UserRepo, cart repos.CartRepo, results repos.ResultRepo) CartService {
	return &cartService{
		db:      db,
		log:     baseLog.With("service", "CartService"),
		users:   users,
		cart:    cart,
		results: results,
	}
}

func (s *cartService) Add(ctx context.Context, userID, imageID string, link *string) (*domain.CartItem, error) {
	exists, err := s.users.Exists(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if !exists {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %q not found", userID))
	}

	var item *domain.CartItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err = s.cart.Upsert(ctx, tx, userID, imageID, link)
		return err
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}

	// Denormalized flag on recommendation results; not load-bearing.
	if err := s.results.SetInCartByUserImage(ctx, nil, userID, imageID, true); err != nil {
		s.log.Warn("Failed to flag results as in cart", "user_id", userID, "image_id", imageID, "error", err)
	}
	return item, nil
}

func (s *cartService) List(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	items, err := s.cart.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return items, nil
}

func (s *cartService) Remove(ctx context.Context, cartID uuid.UUID) error {
	item, err := s.cart.GetByID(ctx, nil, cartID)
	if err != nil {
		return apierr.Internal(err)
	}
	if item == nil {
		return apierr.NotFound("cart_item_not_found", fmt.Errorf("cart item %s not found", cartID))
	}

	deleted, err := s.cart.Delete(ctx, nil, cartID)
	if err != nil {
		return apierr.Internal(err)
	}
	if !deleted {
		return apierr.NotFound("cart_item_not_found", fmt.Errorf("cart item %s not found", cartID))
	}

	if err := s.results.SetInCartByUserImage(ctx, nil, item.UserID, item.ImageID, false); err != nil {
		s.log.Warn("Failed to unflag results after cart removal",
			"user_id", item.UserID, "image_id", item.ImageID, "error", err)
	}
	return nil
}
