package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aurawear/aurawear-backend/internal/http/response"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
	"github.com/aurawear/aurawear-backend/internal/services"
)

type ColorAnalysisHandler struct {
	log      *logger.Logger
	analysis services.ColorAnalysisService
}

func NewColorAnalysisHandler(baseLog *logger.Logger, analysis services.ColorAnalysisService) *ColorAnalysisHandler {
	return &ColorAnalysisHandler{
		log:      baseLog.With("handler", "ColorAnalysisHandler"),
		analysis: analysis,
	}
}

type colorAnalysisRequest struct {
	Image string `json:"image" binding:"required"`
}

// POST /api/color-analysis
func (h *ColorAnalysisHandler) Analyze(c *gin.Context) {
	var req colorAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, apierr.Validation(err))
		return
	}

	resp, err := h.analysis.Analyze(c.Request.Context(), req.Image)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, resp)
}
