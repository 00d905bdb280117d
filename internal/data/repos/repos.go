package repos

import (
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/data/repos/cart"
	"github.com/aurawear/aurawear-backend/internal/data/repos/lookup"
	"github.com/aurawear/aurawear-backend/internal/data/repos/session"
	"github.com/aurawear/aurawear-backend/internal/data/repos/user"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type SessionRepo = session.SessionRepo
type RoundRepo = session.RoundRepo
type ResultRepo = session.ResultRepo

type CartRepo = cart.CartRepo

type LookupRepo = lookup.LookupRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return session.NewSessionRepo(db, baseLog)
}
func NewRoundRepo(db *gorm.DB, baseLog *logger.Logger) RoundRepo {
	return session.NewRoundRepo(db, baseLog)
}
func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	return session.NewResultRepo(db, baseLog)
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo { return cart.NewCartRepo(db, baseLog) }

func NewLookupRepo(db *gorm.DB, baseLog *logger.Logger) LookupRepo {
	return lookup.NewLookupRepo(db, baseLog)
}
