package http

import (
	"github.com/gin-gonic/gin"

	"github.com/aurawear/aurawear-backend/internal/http/handlers"
	"github.com/aurawear/aurawear-backend/internal/http/middleware"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	CORSAllowOrigins []string

	HealthHandler        *handlers.HealthHandler
	ColorAnalysisHandler *handlers.ColorAnalysisHandler
	SessionHandler       *handlers.SessionHandler
	CartHandler          *handlers.CartHandler
	UserHandler          *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSAllowOrigins))

	router.GET("/", cfg.HealthHandler.Root)
	router.GET("/health", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/color-analysis", cfg.ColorAnalysisHandler.Analyze)

		api.POST("/sessions", cfg.SessionHandler.CreateSession)
		api.POST("/sessions/:session_id/rounds", cfg.SessionHandler.CreateRound)

		api.GET("/cart", cfg.CartHandler.List)
		api.POST("/cart", cfg.CartHandler.Add)
		api.DELETE("/cart/:cart_id", cfg.CartHandler.Remove)

		api.POST("/users", cfg.UserHandler.Register)
		api.GET("/users/:user_id", cfg.UserHandler.Get)
		api.DELETE("/users/:user_id", cfg.UserHandler.Delete)
	}

	return router
}
