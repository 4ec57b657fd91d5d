package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/internal/event"
	"planetarium-booking/pkg/monitoring"
	"planetarium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	ListReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetReservation(ctx context.Context, userID string, isAdmin bool, reservationID string) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, userID string, isAdmin bool, reservationID string) error
}

type reservationService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewReservationService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) ReservationService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &reservationService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "reservation")),
	}
}

// CreateReservation stores the reservation and all of its tickets in one
// transaction. Tickets are checked in request order, row before seat, and the
// first failure rolls back the whole batch.
func (s *reservationService) CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newValidationError("user_id", "Must be a valid UUID")
	}

	sessionIDs := make([]uuid.UUID, len(req.Tickets))
	for i, t := range req.Tickets {
		id, err := uuid.Parse(t.ShowSession)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("tickets[%d].show_session", i), "Must be a valid UUID")
		}
		sessionIDs[i] = id
	}

	reservation := &entity.Reservation{
		CreatedRecord: entity.CreatedRecord{ID: uuid.New()},
		UserID:        userUUID,
	}

	err = s.repo.UoW.Do(ctx, func(ctx context.Context, tx *repository.Repository, after func(repository.AfterCommit)) error {
		// The reservation row goes first so tickets can reference it.
		if err := tx.Reservation.Create(ctx, reservation); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				return &ReferenceError{Field: "user", ID: userID}
			}
			return fmt.Errorf("create reservation: %w", err)
		}

		domes := make(map[uuid.UUID]*entity.Dome)
		tickets := make([]*entity.Ticket, 0, len(req.Tickets))

		for i, t := range req.Tickets {
			dome, err := s.sessionDome(ctx, tx, i, sessionIDs[i], domes)
			if err != nil {
				return err
			}

			if !dome.HasRow(t.Row) {
				return &OutOfRangeError{Index: i, Field: "row", Value: t.Row, Bound: "rows", Max: dome.Rows}
			}
			if !dome.HasSeat(t.Seat) {
				return &OutOfRangeError{Index: i, Field: "seat", Value: t.Seat, Bound: "seats_in_row", Max: dome.SeatsInRow}
			}

			ticket := &entity.Ticket{
				ID:            uuid.New(),
				ShowSessionID: sessionIDs[i],
				ReservationID: reservation.ID,
				Row:           t.Row,
				Seat:          t.Seat,
			}

			if err := tx.Ticket.Create(ctx, ticket); err != nil {
				switch {
				case errors.Is(err, repository.ErrConflict):
					return &ConflictError{Index: i, SessionID: ticket.ShowSessionID, Row: t.Row, Seat: t.Seat}
				case errors.Is(err, repository.ErrForeignKey):
					return &ReferenceError{Field: fmt.Sprintf("tickets[%d].show_session", i), ID: t.ShowSession}
				}
				return fmt.Errorf("create ticket %d: %w", i, err)
			}

			tickets = append(tickets, ticket)
		}

		reservation.Tickets = tickets
		after(func(ctx context.Context) {
			s.publishCreated(ctx, reservation)
		})
		return nil
	})

	if err != nil {
		outcome := reservationOutcome(err)
		monitoring.TrackReservation(outcome)
		if outcome == monitoring.OutcomeError {
			s.log.Error("Failed to create reservation",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.Int("ticket_count", len(req.Tickets)),
			)
		} else {
			s.log.Warn("Reservation rejected",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.String("outcome", outcome),
			)
		}
		return nil, err
	}

	monitoring.TrackReservation(monitoring.OutcomeCreated)
	monitoring.TrackTicketsCreated(len(reservation.Tickets))

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID),
		zap.Int("ticket_count", len(reservation.Tickets)),
	)

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

// sessionDome resolves the dome bound to a session, memoized per request.
func (s *reservationService) sessionDome(ctx context.Context, tx *repository.Repository, index int, sessionID uuid.UUID, domes map[uuid.UUID]*entity.Dome) (*entity.Dome, error) {
	if dome, ok := domes[sessionID]; ok {
		return dome, nil
	}

	session, err := tx.ShowSession.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("find show session %s: %w", sessionID, err)
	}
	if session == nil {
		return nil, &ReferenceError{Field: fmt.Sprintf("tickets[%d].show_session", index), ID: sessionID.String()}
	}

	dome, err := tx.Dome.FindByID(ctx, session.DomeID)
	if err != nil {
		return nil, fmt.Errorf("find dome %s: %w", session.DomeID, err)
	}
	if dome == nil {
		return nil, &ReferenceError{Field: "planetarium_dome", ID: session.DomeID.String()}
	}

	domes[sessionID] = dome
	return dome, nil
}

func (s *reservationService) publishCreated(ctx context.Context, reservation *entity.Reservation) {
	ev := event.ReservationCreated{
		ReservationID: reservation.ID.String(),
		UserID:        reservation.UserID.String(),
		CreatedAt:     reservation.CreatedAt,
		Tickets:       make([]event.TicketPlaced, len(reservation.Tickets)),
	}
	for i, t := range reservation.Tickets {
		ev.Tickets[i] = event.TicketPlaced{
			TicketID:      t.ID.String(),
			ShowSessionID: t.ShowSessionID.String(),
			Row:           t.Row,
			Seat:          t.Seat,
		}
	}

	// Runs inline after commit: a failure is only logged, and the timeout caps
	// how long a slow broker can hold the response.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.publisher.PublishReservationCreated(pubCtx, ev); err != nil {
		s.log.Warn("Failed to publish reservation event",
			zap.Error(err),
			zap.String("reservation_id", ev.ReservationID),
		)
	}
}

func (s *reservationService) ListReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newValidationError("user_id", "Must be a valid UUID")
	}

	limit := req.Limit()
	offset := req.Offset()

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user reservations",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user reservations", zap.Error(err))
		return nil, fmt.Errorf("count user reservations: %w", err)
	}

	ids := make([]uuid.UUID, len(reservations))
	for i, r := range reservations {
		ids[i] = r.ID
	}

	tickets, err := s.repo.Ticket.FindByReservationIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get reservation tickets: %w", err)
	}

	byReservation := make(map[uuid.UUID][]*entity.TicketView, len(reservations))
	for _, t := range tickets {
		byReservation[t.ReservationID] = append(byReservation[t.ReservationID], t)
	}

	data := make([]response.ReservationResponse, len(reservations))
	for i, r := range reservations {
		data[i] = response.ReservationWithTicketsToResponse(r, byReservation[r.ID])
	}

	s.log.Info("User reservations retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(reservations)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}

func (s *reservationService) GetReservation(ctx context.Context, userID string, isAdmin bool, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.findOwned(ctx, userID, isAdmin, reservationID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.repo.Ticket.FindByReservationIDs(ctx, []uuid.UUID{reservation.ID})
	if err != nil {
		return nil, fmt.Errorf("get reservation tickets: %w", err)
	}

	resp := response.ReservationWithTicketsToResponse(reservation, tickets)
	return &resp, nil
}

// DeleteReservation removes the reservation with its tickets, which frees
// the seats of every session it touched.
func (s *reservationService) DeleteReservation(ctx context.Context, userID string, isAdmin bool, reservationID string) error {
	reservation, err := s.findOwned(ctx, userID, isAdmin, reservationID)
	if err != nil {
		return err
	}

	if err := s.repo.Reservation.Delete(ctx, reservation.ID); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	s.log.Info("Reservation deleted",
		zap.String("reservation_id", reservationID),
		zap.String("by_user_id", userID),
	)
	return nil
}

// findOwned hides other users' reservations behind not found.
func (s *reservationService) findOwned(ctx context.Context, userID string, isAdmin bool, reservationID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil || (!isAdmin && reservation.UserID.String() != userID) {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, repository.ErrNotFound)
	}

	return reservation, nil
}

func reservationOutcome(err error) string {
	var (
		oor *OutOfRangeError
		cfl *ConflictError
		ref *ReferenceError
	)
	switch {
	case errors.As(err, &oor):
		return monitoring.OutcomeOutOfRange
	case errors.As(err, &cfl):
		return monitoring.OutcomeConflict
	case errors.As(err, &ref):
		return monitoring.OutcomeReference
	}
	return monitoring.OutcomeError
}
