package service

import (
	"github.com/repfit/repfit-server/internal/auth"
	"github.com/repfit/repfit-server/internal/config"
	"github.com/repfit/repfit-server/internal/repository"
)

type Services struct {
	Auth    *AuthService
	User    *UserService
	Routine *RoutineService
	Log     *LogService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	return &Services{
		Auth:    NewAuthService(repos.User, hasher, tokens),
		User:    NewUserService(repos.User, hasher),
		Routine: NewRoutineService(repos.Routine),
		Log:     NewLogService(repos.DailyLog, repos.Routine),
	}
}
