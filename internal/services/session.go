package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/clients/stylist"
	"github.com/aurawear/aurawear-backend/internal/data/repos"
	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/httpx"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type CreateSessionInput struct {
	UserID             string
	SelectedPaletteIDs []int
	GenderID           int
	StyleID            int
	UserImage          string
	SkinColorHex       string
	HairColorHex       string
	EyeColor           *string
	K                  int
}

type CreateSessionOutput struct {
	SessionID         uuid.UUID
	RoundID           uuid.UUID
	RecommendedImages []stylist.RecommendedImage
}

type CreateRoundInput struct {
	SelectedPaletteIDs []int
	LikeImageIDs       []string
	Dislikes           []stylist.DislikeItem
	PreviousRoundImage []string
	UserText           *string
	K                  int
}

type CreateRoundOutput struct {
	RoundID           uuid.UUID
	RecommendedImages []stylist.RecommendedImage
}

// SessionService coordinates the local transactional writes with the one
// external recommender call per operation. The local database never retains
// a round whose recommendation results were not produced: every failure past
// the local insert triggers compensating deletes before the error surfaces.
type SessionService interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionOutput, error)
	CreateRound(ctx context.Context, sessionID uuid.UUID, in CreateRoundInput) (*CreateRoundOutput, error)
}

type sessionService struct {
	db      *gorm.DB
	log     *logger.Logger
	users   repos.UserRepo
	session repos.SessionRepo
	rounds  repos.RoundRepo
	results repos.ResultRepo
	lookups repos.LookupRepo
	stylist stylist.Client
}

func NewSessionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users repos.UserRepo,
	sessions repos.SessionRepo,
	rounds repos.RoundRepo,
	results repos.ResultRepo,
	lookups repos.LookupRepo,
	stylistClient stylist.Client,
) SessionService {
	return &sessionService{
		db:      db,
		log:     baseLog.With("service", "SessionService"),
		users:   users,
		session: sessions,
		rounds:  rounds,
		results: results,
		lookups: lookups,
		stylist: stylistClient,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionOutput, error) {
	exists, err := s.users.Exists(ctx, nil, in.UserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if !exists {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %q not found", in.UserID))
	}
	if err := s.validateSelections(ctx, in.SelectedPaletteIDs, &in.GenderID, &in.StyleID); err != nil {
		return nil, err
	}

	// Local writes first. The session and its first round are committed
	// together; if the recommender call below fails they are both removed.
	var (
		sess  *domain.Session
		round *domain.Round
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, err = s.session.Create(ctx, tx, &domain.Session{
			UserID:       in.UserID,
			UserImage:    &in.UserImage,
			GenderID:     &in.GenderID,
			StyleID:      &in.StyleID,
			SkinColorHex: &in.SkinColorHex,
			HairColorHex: &in.HairColorHex,
			EyeColor:     in.EyeColor,
		})
		if err != nil {
			return err
		}
		round, err = s.rounds.Create(ctx, tx, sess.ID, in.SelectedPaletteIDs, nil)
		return err
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}

	resp, err := s.stylist.Recommend(ctx, stylist.RecommendRequest{
		SelectedPaletteIDs: in.SelectedPaletteIDs,
		Filters: stylist.RecommendFilters{
			Gender: in.GenderID,
			Styles: []int{in.StyleID},
		},
		K: in.K,
	})
	if err != nil {
		s.discardSession(ctx, sess.ID, round.ID)
		return nil, s.mapStylistErr(err)
	}

	if err := s.storeResults(ctx, round.ID, resp.RecommendedImages); err != nil {
		s.discardSession(ctx, sess.ID, round.ID)
		return nil, apierr.Internal(err)
	}

	s.log.Info("Session created",
		"session_id", sess.ID.String(), "round_id", round.ID.String(), "results", len(resp.RecommendedImages))
	return &CreateSessionOutput{
		SessionID:         sess.ID,
		RoundID:           round.ID,
		RecommendedImages: resp.RecommendedImages,
	}, nil
}

func (s *sessionService) CreateRound(ctx context.Context, sessionID uuid.UUID, in CreateRoundInput) (*CreateRoundOutput, error) {
	sess, err := s.session.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if sess == nil {
		return nil, apierr.NotFound("session_not_found", fmt.Errorf("session %s not found", sessionID))
	}
	if err := s.validateSelections(ctx, in.SelectedPaletteIDs, nil, nil); err != nil {
		return nil, err
	}

	// The previous round is resolved before the new insert: the most recent
	// round of this session. The request does not carry its id.
	previous, err := s.rounds.LatestForSession(ctx, nil, sessionID, uuid.Nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	round, err := s.rounds.Create(ctx, nil, sessionID, in.SelectedPaletteIDs, in.UserText)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	// Best-effort metadata: annotate the previous round's results with the
	// user's reactions. Failures are logged, never fatal to the new round.
	if previous != nil {
		s.annotatePreviousRound(ctx, previous.ID, in.LikeImageIDs, in.Dislikes)
	}

	resp, err := s.stylist.Regenerate(ctx, stylist.RegenerateRequest{
		SelectedPaletteIDs: in.SelectedPaletteIDs,
		Like:               in.LikeImageIDs,
		Dislike:            in.Dislikes,
		PreviousRound:      in.PreviousRoundImage,
		UserText:           in.UserText,
		K:                  in.K,
		SessionID:          sessionID.String(),
		RoundID:            round.ID.String(),
	})
	if err != nil {
		s.discardRound(ctx, round.ID)
		return nil, s.mapStylistErr(err)
	}

	// The call itself succeeding is not enough on this path: the recommender
	// must acknowledge that the round vector was durably saved downstream.
	if resp.VectorSaved != nil && !*resp.VectorSaved {
		s.discardRound(ctx, round.ID)
		return nil, apierr.Internal(errors.New("stylist did not durably save the round vector, please retry"))
	}

	if err := s.storeResults(ctx, round.ID, resp.RecommendedImages); err != nil {
		s.discardRound(ctx, round.ID)
		return nil, apierr.Internal(err)
	}

	s.log.Info("Round created",
		"session_id", sessionID.String(), "round_id", round.ID.String(), "results", len(resp.RecommendedImages))
	return &CreateRoundOutput{
		RoundID:           round.ID,
		RecommendedImages: resp.RecommendedImages,
	}, nil
}

func (s *sessionService) validateSelections(ctx context.Context, paletteIDs []int, genderID, styleID *int) error {
	if len(paletteIDs) == 0 {
		return apierr.Validation(errors.New("selected_palette_ids must not be empty"))
	}
	missing, err := s.lookups.MissingPaletteIDs(ctx, nil, paletteIDs)
	if err != nil {
		return apierr.Internal(err)
	}
	if len(missing) > 0 {
		return apierr.Validation(fmt.Errorf("unknown season palette ids: %v", missing))
	}
	if genderID != nil {
		ok, err := s.lookups.SexExists(ctx, nil, *genderID)
		if err != nil {
			return apierr.Internal(err)
		}
		if !ok {
			return apierr.Validation(fmt.Errorf("unknown gender id %d", *genderID))
		}
	}
	if styleID != nil {
		ok, err := s.lookups.StyleExists(ctx, nil, *styleID)
		if err != nil {
			return apierr.Internal(err)
		}
		if !ok {
			return apierr.Validation(fmt.Errorf("unknown style id %d", *styleID))
		}
	}
	return nil
}

// storeResults bulk-inserts one row per recommended image inside one
// transaction, rank assigned from response order.
func (s *sessionService) storeResults(ctx context.Context, roundID uuid.UUID, images []stylist.RecommendedImage) error {
	rows := make([]*domain.RoundRecommendedResult, 0, len(images))
	for i, img := range images {
		score := img.Score
		rows = append(rows, &domain.RoundRecommendedResult{
			RoundID:         roundID,
			ImageID:         img.ImageID,
			RankOrder:       i,
			Score:           &score,
			ExplanationText: img.ExplanationText,
		})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.results.BulkCreate(ctx, tx, rows)
		return err
	})
}

func (s *sessionService) annotatePreviousRound(ctx context.Context, previousRoundID uuid.UUID, likes []string, dislikes []stylist.DislikeItem) {
	for _, imageID := range likes {
		if _, err := s.results.UpdateAction(ctx, nil, previousRoundID, imageID, domain.ImageActionLike, nil); err != nil {
			s.log.Warn("Failed to record like on previous round",
				"round_id", previousRoundID.String(), "image_id", imageID, "error", err)
		}
	}
	for _, d := range dislikes {
		var desc *string
		if d.Comment != "" {
			comment := d.Comment
			desc = &comment
		}
		if _, err := s.results.UpdateAction(ctx, nil, previousRoundID, d.ImageID, domain.ImageActionDislike, desc); err != nil {
			s.log.Warn("Failed to record dislike on previous round",
				"round_id", previousRoundID.String(), "image_id", d.ImageID, "error", err)
		}
	}
}

// discardRound removes a round (and any partially inserted results) after a
// failed external call. Uses a fresh context so rollback still happens when
// the request context is already cancelled.
func (s *sessionService) discardRound(ctx context.Context, roundID uuid.UUID) {
	cleanupCtx := context.WithoutCancel(ctx)
	if _, err := s.rounds.Delete(cleanupCtx, nil, roundID); err != nil {
		s.log.Error("Failed to roll back round", "round_id", roundID.String(), "error", err)
	}
}

func (s *sessionService) discardSession(ctx context.Context, sessionID, roundID uuid.UUID) {
	cleanupCtx := context.WithoutCancel(ctx)
	if _, err := s.rounds.Delete(cleanupCtx, nil, roundID); err != nil {
		s.log.Error("Failed to roll back round", "round_id", roundID.String(), "error", err)
	}
	if _, err := s.session.Delete(cleanupCtx, nil, sessionID); err != nil {
		s.log.Error("Failed to roll back session", "session_id", sessionID.String(), "error", err)
	}
}

func (s *sessionService) mapStylistErr(err error) *apierr.Error {
	var se *stylist.StatusError
	if errors.As(err, &se) {
		return apierr.Upstream(se.Code, err)
	}
	if httpx.IsUnreachableError(err) {
		return apierr.Unavailable(err)
	}
	return apierr.Internal(err)
}
