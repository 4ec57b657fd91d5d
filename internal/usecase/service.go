package usecase

import (
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/event"
	"planetarium-booking/pkg/redisx"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Dome        DomeService
	Theme       ThemeService
	Show        ShowService
	Session     SessionService
	Reservation ReservationService
}

// NewService builds every use case. cache may be nil when Redis is not
// configured.
func NewService(repo *repository.Repository, cache *redisx.Cache, publisher event.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Dome:        NewDomeService(repo, cache, log),
		Theme:       NewThemeService(repo, cache, log),
		Show:        NewShowService(repo, cache, config, log),
		Session:     NewSessionService(repo, log),
		Reservation: NewReservationService(repo, publisher, log),
	}
}
