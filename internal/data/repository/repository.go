package repository

import (
	"planetarium-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	AuthSession   AuthSessionRepository
	Dome          DomeRepository
	ShowTheme     ShowThemeRepository
	AstronomyShow AstronomyShowRepository
	ShowSession   ShowSessionRepository
	Reservation   ReservationRepository
	Ticket        TicketRepository

	// UoW is nil on the transaction-scoped Repository handed to UnitOfWork.Do.
	UoW UnitOfWork
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.UoW = NewUnitOfWork(db, log)
	return repo
}

func newRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		AuthSession:   NewAuthSessionRepository(db, log),
		Dome:          NewDomeRepository(db, log),
		ShowTheme:     NewShowThemeRepository(db, log),
		AstronomyShow: NewAstronomyShowRepository(db, log),
		ShowSession:   NewShowSessionRepository(db, log),
		Reservation:   NewReservationRepository(db, log),
		Ticket:        NewTicketRepository(db, log),
	}
}
