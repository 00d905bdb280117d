package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aurawear/aurawear-backend/internal/clients/stylist"
	"github.com/aurawear/aurawear-backend/internal/data/repos"
	"github.com/aurawear/aurawear-backend/internal/data/repos/testutil"
	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/services"
)

// stubStylist lets each test script the recommender's behavior.
type stubStylist struct {
	analyzeFn    func(ctx context.Context, req stylist.AnalyzeColorRequest) (*stylist.AnalyzeColorResponse, error)
	recommendFn  func(ctx context.Context, req stylist.RecommendRequest) (*stylist.RecommendResponse, error)
	regenerateFn func(ctx context.Context, req stylist.RegenerateRequest) (*stylist.RecommendResponse, error)
}

func (s *stubStylist) AnalyzeColor(ctx context.Context, req stylist.AnalyzeColorRequest) (*stylist.AnalyzeColorResponse, error) {
	return s.analyzeFn(ctx, req)
}

func (s *stubStylist) Recommend(ctx context.Context, req stylist.RecommendRequest) (*stylist.RecommendResponse, error) {
	return s.recommendFn(ctx, req)
}

func (s *stubStylist) Regenerate(ctx context.Context, req stylist.RegenerateRequest) (*stylist.RecommendResponse, error) {
	return s.regenerateFn(ctx, req)
}

func recommendedImages(n int) []stylist.RecommendedImage {
	out := make([]stylist.RecommendedImage, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, stylist.RecommendedImage{
			ImageID:   uuid.NewString(),
			RankOrder: i,
			Score:     1 - float64(i)/10,
		})
	}
	return out
}

func newSessionService(t *testing.T, client stylist.Client) services.SessionService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return services.NewSessionService(
		db,
		log,
		repos.NewUserRepo(db, log),
		repos.NewSessionRepo(db, log),
		repos.NewRoundRepo(db, log),
		repos.NewResultRepo(db, log),
		repos.NewLookupRepo(db, log),
		client,
	)
}

func seedCommittedUser(t *testing.T, id string) {
	t.Helper()
	db := testutil.DB(t)
	if err := db.Create(&domain.User{ID: id}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() {
		log := testutil.Logger(t)
		repo := repos.NewUserRepo(db, log)
		_, _ = repo.Delete(context.Background(), nil, id)
	})
}

func baseSessionInput(userID string) services.CreateSessionInput {
	return services.CreateSessionInput{
		UserID:             userID,
		SelectedPaletteIDs: []int{1, 2},
		GenderID:           1,
		StyleID:            1,
		UserImage:          "uploads/img.png",
		SkinColorHex:       "#E8C4A0",
		HairColorHex:       "#3B2219",
		K:                  50,
	}
}

func TestCreateSessionStoresRankedResults(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	seedCommittedUser(t, "svc-session-ok")

	var gotReq stylist.RecommendRequest
	svc := newSessionService(t, &stubStylist{
		recommendFn: func(ctx context.Context, req stylist.RecommendRequest) (*stylist.RecommendResponse, error) {
			gotReq = req
			return &stylist.RecommendResponse{RecommendedImages: recommendedImages(3)}, nil
		},
	})

	out, err := svc.CreateSession(ctx, baseSessionInput("svc-session-ok"))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if out.SessionID == uuid.Nil || out.RoundID == uuid.Nil {
		t.Fatalf("ids not assigned: %+v", out)
	}
	if len(out.RecommendedImages) != 3 {
		t.Fatalf("recommended images: want=3 got=%d", len(out.RecommendedImages))
	}
	if gotReq.K != 50 || gotReq.Filters.Gender != 1 {
		t.Fatalf("recommend request: got %+v", gotReq)
	}

	var rows []domain.RoundRecommendedResult
	if err := db.Where("round_id = ?", out.RoundID).Order("rank_order ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("stored results: want=3 got=%d", len(rows))
	}
	for i, row := range rows {
		if row.RankOrder != i {
			t.Fatalf("rank at %d: want=%d got=%d", i, i, row.RankOrder)
		}
	}
}

func TestCreateSessionUnknownUser(t *testing.T) {
	svc := newSessionService(t, &stubStylist{})

	_, err := svc.CreateSession(context.Background(), baseSessionInput("svc-session-nobody"))
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != 404 || ae.Code != "user_not_found" {
		t.Fatalf("error: want 404 user_not_found, got %v", err)
	}
}

func TestCreateSessionUnknownPaletteID(t *testing.T) {
	seedCommittedUser(t, "svc-session-badpalette")
	svc := newSessionService(t, &stubStylist{})

	in := baseSessionInput("svc-session-badpalette")
	in.SelectedPaletteIDs = []int{1, 999}
	_, err := svc.CreateSession(context.Background(), in)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != 422 {
		t.Fatalf("error: want 422, got %v", err)
	}
}

func TestCreateSessionRecommenderFailureRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	seedCommittedUser(t, "svc-session-fail")

	svc := newSessionService(t, &stubStylist{
		recommendFn: func(ctx context.Context, req stylist.RecommendRequest) (*stylist.RecommendResponse, error) {
			return nil, &stylist.StatusError{Code: 502, Body: "recommender down"}
		},
	})

	_, err := svc.CreateSession(ctx, baseSessionInput("svc-session-fail"))
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != 502 || ae.Code != "stylist_error" {
		t.Fatalf("error: want 502 stylist_error, got %v", err)
	}

	var n int64
	if err := db.Model(&domain.Session{}).Where("user_id = ?", "svc-session-fail").Count(&n).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if n != 0 {
		t.Fatalf("session survived failed recommend: got=%d", n)
	}
}

func TestCreateRoundAnnotatesPreviousAndStoresResults(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	seedCommittedUser(t, "svc-round-ok")

	var firstRoundID uuid.UUID
	svc := newSessionService(t, &stubStylist{
		recommendFn: func(ctx context.Context, req stylist.RecommendRequest) (*stylist.RecommendResponse, error) {
			return &stylist.RecommendResponse{RecommendedImages: []stylist.RecommendedImage{
				{ImageID: "img_300", RankOrder: 0, Score: 0.9},
				{ImageID: "img_301", RankOrder: 1, Score: 0.8},
			}}, nil
		},
		regenerateFn: func(ctx context.Context, req stylist.RegenerateRequest) (*stylist.RecommendResponse, error) {
			if req.RoundID == firstRoundID.String() {
				return nil, errors.New("regenerate must target the new round")
			}
			return &stylist.RecommendResponse{RecommendedImages: recommendedImages(2)}, nil
		},
	})

	first, err := svc.CreateSession(ctx, baseSessionInput("svc-round-ok"))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	firstRoundID = first.RoundID

	desc := "too dark"
	out, err := svc.CreateRound(ctx, first.SessionID, services.CreateRoundInput{
		SelectedPaletteIDs: []int{3},
		LikeImageIDs:       []string{"img_300"},
		Dislikes:           []stylist.DislikeItem{{ImageID: "img_301", Comment: desc}},
		PreviousRoundImage: []string{"img_300", "img_301"},
		K:                  10,
	})
	if err != nil {
		t.Fatalf("CreateRound: %v", err)
	}
	if out.RoundID == first.RoundID {
		t.Fatal("new round id must differ from the first round")
	}
	if len(out.RecommendedImages) != 2 {
		t.Fatalf("recommended images: want=2 got=%d", len(out.RecommendedImages))
	}

	// Previous round carries the recorded reactions.
	var liked domain.RoundRecommendedResult
	if err := db.Where("round_id = ? AND image_id = ?", first.RoundID, "img_300").First(&liked).Error; err != nil {
		t.Fatalf("load liked result: %v", err)
	}
	if liked.ActionTypeID == nil || *liked.ActionTypeID != domain.ImageActionLike {
		t.Fatalf("like not recorded: %+v", liked)
	}
	var disliked domain.RoundRecommendedResult
	if err := db.Where("round_id = ? AND image_id = ?", first.RoundID, "img_301").First(&disliked).Error; err != nil {
		t.Fatalf("load disliked result: %v", err)
	}
	if disliked.ActionTypeID == nil || *disliked.ActionTypeID != domain.ImageActionDislike {
		t.Fatalf("dislike not recorded: %+v", disliked)
	}
	if disliked.DislikeDesc == nil || *disliked.DislikeDesc != desc {
		t.Fatalf("dislike_desc: want=%q got=%v", desc, disliked.DislikeDesc)
	}
}

func TestCreateRoundUnknownSession(t *testing.T) {
	svc := newSessionService(t, &stubStylist{})

	_, err := svc.CreateRound(context.Background(), uuid.New(), services.CreateRoundInput{
		SelectedPaletteIDs: []int{1},
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != 404 || ae.Code != "session_not_found" {
		t.Fatalf("error: want 404 session_not_found, got %v", err)
	}
}

func TestCreateRoundRollsBackWhenVectorNotSaved(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	seedCommittedUser(t, "svc-round-vector")

	notSaved := false
	svc := newSessionService(t, &stubStylist{
		recommendFn: func(ctx context.Context, req stylist.RecommendRequest) (*stylist.RecommendResponse, error) {
			return &stylist.RecommendResponse{RecommendedImages: recommendedImages(1)}, nil
		},
		regenerateFn: func(ctx context.Context, req stylist.RegenerateRequest) (*stylist.RecommendResponse, error) {
			return &stylist.RecommendResponse{
				RecommendedImages: recommendedImages(1),
				VectorSaved:       &notSaved,
			}, nil
		},
	})

	first, err := svc.CreateSession(ctx, baseSessionInput("svc-round-vector"))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, err = svc.CreateRound(ctx, first.SessionID, services.CreateRoundInput{
		SelectedPaletteIDs: []int{1},
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != 500 {
		t.Fatalf("error: want 500, got %v", err)
	}

	// Only the first round remains; the rejected one is gone, the session stays.
	var rounds int64
	if err := db.Model(&domain.Round{}).Where("session_id = ?", first.SessionID).Count(&rounds).Error; err != nil {
		t.Fatalf("count rounds: %v", err)
	}
	if rounds != 1 {
		t.Fatalf("rounds after failed regenerate: want=1 got=%d", rounds)
	}
	var sessions int64
	if err := db.Model(&domain.Session{}).Where("id = ?", first.SessionID).Count(&sessions).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if sessions != 1 {
		t.Fatalf("session must survive a failed round: got=%d", sessions)
	}
}

func TestCreateRoundUnreachableRecommenderMapsTo503(t *testing.T) {
	ctx := context.Background()
	seedCommittedUser(t, "svc-round-unreach")

	svc := newSessionService(t, &stubStylist{
		recommendFn: func(ctx context.Context, req stylist.RecommendRequest) (*stylist.RecommendResponse, error) {
			return &stylist.RecommendResponse{RecommendedImages: recommendedImages(1)}, nil
		},
		regenerateFn: func(ctx context.Context, req stylist.RegenerateRequest) (*stylist.RecommendResponse, error) {
			return nil, context.DeadlineExceeded
		},
	})

	first, err := svc.CreateSession(ctx, baseSessionInput("svc-round-unreach"))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, err = svc.CreateRound(ctx, first.SessionID, services.CreateRoundInput{
		SelectedPaletteIDs: []int{1},
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != 503 || ae.Code != "stylist_unavailable" {
		t.Fatalf("error: want 503 stylist_unavailable, got %v", err)
	}
}
