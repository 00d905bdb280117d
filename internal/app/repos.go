package app

import (
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/data/repos"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type Repos struct {
	User    repos.UserRepo
	Session repos.SessionRepo
	Round   repos.RoundRepo
	Result  repos.ResultRepo
	Cart    repos.CartRepo
	Lookup  repos.LookupRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:    repos.NewUserRepo(db, log),
		Session: repos.NewSessionRepo(db, log),
		Round:   repos.NewRoundRepo(db, log),
		Result:  repos.NewResultRepo(db, log),
		Cart:    repos.NewCartRepo(db, log),
		Lookup:  repos.NewLookupRepo(db, log),
	}
}
