package user_test

import (
	"context"
	"testing"

	"github.com/aurawear/aurawear-backend/internal/data/repos/testutil"
	"github.com/aurawear/aurawear-backend/internal/data/repos/user"
	"github.com/aurawear/aurawear-backend/internal/domain"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := user.NewUserRepo(db, testutil.Logger(t))

	name := "Ana"
	created, err := repo.Create(ctx, tx, &domain.User{ID: "user-create-1", UserName: &name})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "user-create-1" {
		t.Fatalf("id: want=%q got=%q", "user-create-1", created.ID)
	}

	got, err := repo.GetByID(ctx, tx, "user-create-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID: want user, got nil")
	}
	if got.UserName == nil || *got.UserName != "Ana" {
		t.Fatalf("user_name: want=%q got=%v", "Ana", got.UserName)
	}
}

func TestUserRepoGetByIDMissing(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := user.NewUserRepo(db, testutil.Logger(t))

	got, err := repo.GetByID(ctx, tx, "no-such-user")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID: want nil, got %+v", got)
	}
}

func TestUserRepoExists(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := user.NewUserRepo(db, testutil.Logger(t))

	testutil.SeedUser(t, ctx, tx, "user-exists-1")

	ok, err := repo.Exists(ctx, tx, "user-exists-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("Exists: want true for seeded user")
	}

	ok, err = repo.Exists(ctx, tx, "user-exists-missing")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("Exists: want false for unknown user")
	}
}

func TestUserRepoDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := user.NewUserRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "user-delete-1")
	s := testutil.SeedSession(t, ctx, tx, u.ID)
	r := testutil.SeedRound(t, ctx, tx, s.ID, []int{1, 2})
	testutil.SeedResult(t, ctx, tx, r.ID, "img_001", 0)
	testutil.SeedResult(t, ctx, tx, r.ID, "img_002", 1)
	testutil.SeedCartItem(t, ctx, tx, u.ID, "img_001")

	deleted, err := repo.Delete(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("Delete: want true")
	}

	var n int64
	if err := tx.Model(&domain.Session{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if n != 0 {
		t.Fatalf("sessions left after delete: got=%d", n)
	}
	if err := tx.Model(&domain.Round{}).Where("session_id = ?", s.ID).Count(&n).Error; err != nil {
		t.Fatalf("count rounds: %v", err)
	}
	if n != 0 {
		t.Fatalf("rounds left after delete: got=%d", n)
	}
	if err := tx.Model(&domain.RoundRecommendedResult{}).Where("round_id = ?", r.ID).Count(&n).Error; err != nil {
		t.Fatalf("count results: %v", err)
	}
	if n != 0 {
		t.Fatalf("results left after delete: got=%d", n)
	}
	if err := tx.Model(&domain.CartItem{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
		t.Fatalf("count cart items: %v", err)
	}
	if n != 0 {
		t.Fatalf("cart items left after delete: got=%d", n)
	}
}

func TestUserRepoDeleteMissing(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := user.NewUserRepo(db, testutil.Logger(t))

	deleted, err := repo.Delete(ctx, tx, "user-delete-missing")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Fatal("Delete: want false for unknown user")
	}
}
