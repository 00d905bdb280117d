package app

import (
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/clients/stylist"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
	"github.com/aurawear/aurawear-backend/internal/services"
)

type Services struct {
	User          services.UserService
	Session       services.SessionService
	Cart          services.CartService
	ColorAnalysis services.ColorAnalysisService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, stylistClient stylist.Client) Services {
	log.Info("Wiring services...")
	return Services{
		User:          services.NewUserService(db, log, reposet.User),
		Session:       services.NewSessionService(db, log, reposet.User, reposet.Session, reposet.Round, reposet.Result, reposet.Lookup, stylistClient),
		Cart:          services.NewCartService(db, log, reposet.User, reposet.Cart, reposet.Result),
		ColorAnalysis: services.NewColorAnalysisService(log, stylistClient),
	}
}
