package app

import (
	"github.com/gin-gonic/gin"

	apihttp "github.com/aurawear/aurawear-backend/internal/http"
	httpH "github.com/aurawear/aurawear-backend/internal/http/handlers"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type Handlers struct {
	Health        *httpH.HealthHandler
	ColorAnalysis *httpH.ColorAnalysisHandler
	Session       *httpH.SessionHandler
	Cart          *httpH.CartHandler
	User          *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:        httpH.NewHealthHandler(cfg.Version),
		ColorAnalysis: httpH.NewColorAnalysisHandler(log, serviceset.ColorAnalysis),
		Session:       httpH.NewSessionHandler(log, serviceset.Session),
		Cart:          httpH.NewCartHandler(log, serviceset.Cart),
		User:          httpH.NewUserHandler(log, serviceset.User),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers) *gin.Engine {
	return apihttp.NewRouter(apihttp.RouterConfig{
		Log:                  log,
		CORSAllowOrigins:     cfg.CORSAllowOrigins,
		HealthHandler:        handlerset.Health,
		ColorAnalysisHandler: handlerset.ColorAnalysis,
		SessionHandler:       handlerset.Session,
		CartHandler:          handlerset.Cart,
		UserHandler:          handlerset.User,
	})
}
