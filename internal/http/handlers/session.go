package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurawear/aurawear-backend/internal/clients/stylist"
	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/http/response"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
	"github.com/aurawear/aurawear-backend/internal/services"
)

const defaultK = 50

type SessionHandler struct {
	log      *logger.Logger
	sessions services.SessionService
}

func NewSessionHandler(baseLog *logger.Logger, sessions services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:      baseLog.With("handler", "SessionHandler"),
		sessions: sessions,
	}
}

type createSessionRequest struct {
	UserID             string  `json:"user_id" binding:"required,max=50"`
	SelectedPaletteIDs []int   `json:"selected_palette_ids" binding:"required,min=1"`
	GenderID           int     `json:"gender_id" binding:"required"`
	StyleID            int     `json:"style_id" binding:"required"`
	UserImage          string  `json:"user_image" binding:"required"`
	SkinColorHex       string  `json:"skin_color_hex" binding:"required"`
	HairColorHex       string  `json:"hair_color_hex" binding:"required"`
	EyeColor           *string `json:"eye_color"`
	K                  *int    `json:"k" binding:"omitempty,min=1,max=100"`
}

type createSessionResponse struct {
	SessionID         string                     `json:"session_id"`
	RoundID           string                     `json:"round_id"`
	RecommendedImages []stylist.RecommendedImage `json:"recommended_images"`
}

// POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, apierr.Validation(err))
		return
	}
	if !domain.IsHexColor(req.SkinColorHex) {
		response.RespondServiceError(c, apierr.Validation(fmt.Errorf("skin_color_hex %q is not a 6-digit hex color", req.SkinColorHex)))
		return
	}
	if !domain.IsHexColor(req.HairColorHex) {
		response.RespondServiceError(c, apierr.Validation(fmt.Errorf("hair_color_hex %q is not a 6-digit hex color", req.HairColorHex)))
		return
	}

	k := defaultK
	if req.K != nil {
		k = *req.K
	}

	out, err := h.sessions.CreateSession(c.Request.Context(), services.CreateSessionInput{
		UserID:             req.UserID,
		SelectedPaletteIDs: req.SelectedPaletteIDs,
		GenderID:           req.GenderID,
		StyleID:            req.StyleID,
		UserImage:          req.UserImage,
		SkinColorHex:       req.SkinColorHex,
		HairColorHex:       req.HairColorHex,
		EyeColor:           req.EyeColor,
		K:                  k,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	response.RespondCreated(c, createSessionResponse{
		SessionID:         out.SessionID.String(),
		RoundID:           out.RoundID.String(),
		RecommendedImages: out.RecommendedImages,
	})
}

type dislikeItemRequest struct {
	ImageID string `json:"image_id" binding:"required"`
	Comment string `json:"comment"`
}

type createRoundRequest struct {
	SelectedPaletteIDs []int                `json:"selected_palette_ids" binding:"required,min=1"`
	Like               []string             `json:"like"`
	Dislike            []dislikeItemRequest `json:"dislike" binding:"omitempty,dive"`
	PreviousRound      []string             `json:"previous_round" binding:"required"`
	UserText           *string              `json:"user_text"`
	K                  *int                 `json:"k" binding:"omitempty,min=1,max=100"`
}

type createRoundResponse struct {
	RoundID           string                     `json:"round_id"`
	RecommendedImages []stylist.RecommendedImage `json:"recommended_images"`
}

// POST /api/sessions/:session_id/rounds
func (h *SessionHandler) CreateRound(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.RespondServiceError(c, apierr.Validation(fmt.Errorf("malformed session id: %w", err)))
		return
	}

	var req createRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, apierr.Validation(err))
		return
	}

	k := defaultK
	if req.K != nil {
		k = *req.K
	}
	dislikes := make([]stylist.DislikeItem, 0, len(req.Dislike))
	for _, d := range req.Dislike {
		dislikes = append(dislikes, stylist.DislikeItem{ImageID: d.ImageID, Comment: d.Comment})
	}

	out, err := h.sessions.CreateRound(c.Request.Context(), sessionID, services.CreateRoundInput{
		SelectedPaletteIDs: req.SelectedPaletteIDs,
		LikeImageIDs:       req.Like,
		Dislikes:           dislikes,
		PreviousRoundImage: req.PreviousRound,
		UserText:           req.UserText,
		K:                  k,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	response.RespondCreated(c, createRoundResponse{
		RoundID:           out.RoundID.String(),
		RecommendedImages: out.RecommendedImages,
	})
}
