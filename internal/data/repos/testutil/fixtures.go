package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, id string) *domain.User {
	tb.Helper()
	name := "Test User"
	u := &domain.User{ID: id, UserName: &name}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string) *domain.Session {
	tb.Helper()
	image := "uploads/test.png"
	skin := "#E0AC69"
	hair := "#3B2219"
	gender := 1
	style := 1
	s := &domain.Session{
		ID:           uuid.New(),
		UserID:       userID,
		UserImage:    &image,
		GenderID:     &gender,
		StyleID:      &style,
		SkinColorHex: &skin,
		HairColorHex: &hair,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedRound(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, paletteIDs []int) *domain.Round {
	tb.Helper()
	raw, err := json.Marshal(paletteIDs)
	if err != nil {
		tb.Fatalf("seed round: marshal palette ids: %v", err)
	}
	r := &domain.Round{
		ID:                 uuid.New(),
		SessionID:          sessionID,
		SelectedPaletteIDs: datatypes.JSON(raw),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed round: %v", err)
	}
	return r
}

// SeedRoundAt backdates the round so ordering by created_at is deterministic.
func SeedRoundAt(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, paletteIDs []int, createdAt time.Time) *domain.Round {
	tb.Helper()
	r := SeedRound(tb, ctx, tx, sessionID, paletteIDs)
	if err := tx.WithContext(ctx).Model(&domain.Round{}).
		Where("id = ?", r.ID).
		Update("created_at", createdAt).Error; err != nil {
		tb.Fatalf("seed round: backdate: %v", err)
	}
	r.CreatedAt = createdAt
	return r
}

func SeedResult(tb testing.TB, ctx context.Context, tx *gorm.DB, roundID uuid.UUID, imageID string, rank int) *domain.RoundRecommendedResult {
	tb.Helper()
	score := 0.5
	res := &domain.RoundRecommendedResult{
		ID:        uuid.New(),
		RoundID:   roundID,
		ImageID:   imageID,
		RankOrder: rank,
		Score:     &score,
	}
	if err := tx.WithContext(ctx).Create(res).Error; err != nil {
		tb.Fatalf("seed result: %v", err)
	}
	return res
}

func SeedCartItem(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, imageID string) *domain.CartItem {
	tb.Helper()
	link := "https://shop.example.com/" + imageID
	item := &domain.CartItem{
		ID:      uuid.New(),
		UserID:  userID,
		ImageID: imageID,
		Link:    &link,
	}
	if err := tx.WithContext(ctx).Create(item).Error; err != nil {
		tb.Fatalf("seed cart item: %v", err)
	}
	return item
}
