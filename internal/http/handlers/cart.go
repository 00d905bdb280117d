package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/http/response"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
	"github.com/aurawear/aurawear-backend/internal/services"
)

type CartHandler struct {
	log  *logger.Logger
	cart services.CartService
}

func NewCartHandler(baseLog *logger.Logger, cart services.CartService) *CartHandler {
	return &CartHandler{
		log:  baseLog.With("handler", "CartHandler"),
		cart: cart,
	}
}

type cartListResponse struct {
	Items      []*domain.CartItem `json:"items"`
	TotalCount int                `json:"total_count"`
}

// GET /api/cart?user_id=
func (h *CartHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.RespondServiceError(c, apierr.Validation(fmt.Errorf("user_id query parameter is required")))
		return
	}

	items, err := h.cart.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if items == nil {
		items = []*domain.CartItem{}
	}
	response.RespondOK(c, cartListResponse{Items: items, TotalCount: len(items)})
}

type cartAddRequest struct {
	UserID  string  `json:"user_id" binding:"required,max=50"`
	ImageID string  `json:"image_id" binding:"required,max=100"`
	Link    *string `json:"link" binding:"omitempty,max=500"`
}

// POST /api/cart
func (h *CartHandler) Add(c *gin.Context) {
	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, apierr.Validation(err))
		return
	}

	item, err := h.cart.Add(c.Request.Context(), req.UserID, req.ImageID, req.Link)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, item)
}

// DELETE /api/cart/:cart_id
func (h *CartHandler) Remove(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("cart_id"))
	if err != nil {
		response.RespondServiceError(c, apierr.Validation(fmt.Errorf("malformed cart id: %w", err)))
		return
	}

	if err := h.cart.Remove(c.Request.Context(), cartID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
