package session_test

import (
	"context"
	"testing"

	"github.com/aurawear/aurawear-backend/internal/data/repos/session"
	"github.com/aurawear/aurawear-backend/internal/data/repos/testutil"
	"github.com/aurawear/aurawear-backend/internal/domain"
)

func TestResultRepoBulkCreateAndList(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := session.NewResultRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "result-bulk-1")
	s := testutil.SeedSession(t, ctx, tx, u.ID)
	r := testutil.SeedRound(t, ctx, tx, s.ID, []int{1})

	score1, score2 := 0.91, 0.82
	rows := []*domain.RoundRecommendedResult{
		{RoundID: r.ID, ImageID: "img_101", RankOrder: 1, Score: &score2},
		{RoundID: r.ID, ImageID: "img_100", RankOrder: 0, Score: &score1},
	}
	created, err := repo.BulkCreate(ctx, tx, rows)
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created: want=2 got=%d", len(created))
	}

	listed, err := repo.ListByRound(ctx, tx, r.ID)
	if err != nil {
		t.Fatalf("ListByRound: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed: want=2 got=%d", len(listed))
	}
	// rank_order ascending regardless of insert order
	if listed[0].ImageID != "img_100" || listed[1].ImageID != "img_101" {
		t.Fatalf("order: want=[img_100 img_101] got=[%s %s]", listed[0].ImageID, listed[1].ImageID)
	}

	n, err := repo.CountByRound(ctx, tx, r.ID)
	if err != nil {
		t.Fatalf("CountByRound: %v", err)
	}
	if n != 2 {
		t.Fatalf("count: want=2 got=%d", n)
	}
}

func TestResultRepoUpdateAction(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := session.NewResultRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "result-action-1")
	s := testutil.SeedSession(t, ctx, tx, u.ID)
	r := testutil.SeedRound(t, ctx, tx, s.ID, []int{1})
	testutil.SeedResult(t, ctx, tx, r.ID, "img_110", 0)

	desc := "too saturated"
	updated, err := repo.UpdateAction(ctx, tx, r.ID, "img_110", domain.ImageActionDislike, &desc)
	if err != nil {
		t.Fatalf("UpdateAction: %v", err)
	}
	if !updated {
		t.Fatal("UpdateAction: want true")
	}

	var row domain.RoundRecommendedResult
	if err := tx.Where("round_id = ? AND image_id = ?", r.ID, "img_110").First(&row).Error; err != nil {
		t.Fatalf("reload result: %v", err)
	}
	if row.ActionTypeID == nil || *row.ActionTypeID != domain.ImageActionDislike {
		t.Fatalf("action_type_id: want=%d got=%v", domain.ImageActionDislike, row.ActionTypeID)
	}
	if row.DislikeDesc == nil || *row.DislikeDesc != desc {
		t.Fatalf("dislike_desc: want=%q got=%v", desc, row.DislikeDesc)
	}

	updated, err = repo.UpdateAction(ctx, tx, r.ID, "img_never_recommended", domain.ImageActionLike, nil)
	if err != nil {
		t.Fatalf("UpdateAction unknown image: %v", err)
	}
	if updated {
		t.Fatal("UpdateAction: want false for image not in round")
	}
}

func TestResultRepoSetInCartByUserImage(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := session.NewResultRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "result-cart-1")
	s := testutil.SeedSession(t, ctx, tx, u.ID)
	r1 := testutil.SeedRound(t, ctx, tx, s.ID, []int{1})
	r2 := testutil.SeedRound(t, ctx, tx, s.ID, []int{2})
	testutil.SeedResult(t, ctx, tx, r1.ID, "img_120", 0)
	testutil.SeedResult(t, ctx, tx, r2.ID, "img_120", 0)
	testutil.SeedResult(t, ctx, tx, r2.ID, "img_121", 1)

	// A different user's result for the same image must not be touched.
	other := testutil.SeedUser(t, ctx, tx, "result-cart-2")
	so := testutil.SeedSession(t, ctx, tx, other.ID)
	ro := testutil.SeedRound(t, ctx, tx, so.ID, []int{1})
	testutil.SeedResult(t, ctx, tx, ro.ID, "img_120", 0)

	if err := repo.SetInCartByUserImage(ctx, tx, u.ID, "img_120", true); err != nil {
		t.Fatalf("SetInCartByUserImage: %v", err)
	}

	var flagged int64
	if err := tx.Model(&domain.RoundRecommendedResult{}).
		Where("round_id IN (?, ?) AND image_id = ? AND is_in_cart = ?", r1.ID, r2.ID, "img_120", true).
		Count(&flagged).Error; err != nil {
		t.Fatalf("count flagged: %v", err)
	}
	if flagged != 2 {
		t.Fatalf("flagged rows: want=2 got=%d", flagged)
	}

	var otherRow domain.RoundRecommendedResult
	if err := tx.Where("round_id = ? AND image_id = ?", ro.ID, "img_120").First(&otherRow).Error; err != nil {
		t.Fatalf("reload other user's result: %v", err)
	}
	if otherRow.IsInCart {
		t.Fatal("other user's result flagged in cart")
	}
}
