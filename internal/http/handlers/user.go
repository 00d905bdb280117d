package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurawear/aurawear-backend/internal/http/response"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
	"github.com/aurawear/aurawear-backend/internal/services"
)

type UserHandler struct {
	log   *logger.Logger
	users services.UserService
}

func NewUserHandler(baseLog *logger.Logger, users services.UserService) *UserHandler {
	return &UserHandler{
		log:   baseLog.With("handler", "UserHandler"),
		users: users,
	}
}

type registerUserRequest struct {
	UserID   string  `json:"user_id" binding:"required,max=50"`
	UserName *string `json:"user_name" binding:"omitempty,max=100"`
}

// POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, apierr.Validation(err))
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.UserID, req.UserName)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, u)
}

// GET /api/users/:user_id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// DELETE /api/users/:user_id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("user_id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
