package repository

import (
	"context"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	// Create fails with ErrConflict when (show_session, row, seat) is taken.
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) ([]*entity.TicketView, error)
}

type ticketRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketRepository(db database.Querier, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, show_session_id, reservation_id, "row", seat)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.ShowSessionID,
		ticket.ReservationID,
		ticket.Row,
		ticket.Seat,
	)

	if err != nil {
		wrapped := wrapDBErr(fmt.Sprintf("create ticket row %d seat %d", ticket.Row, ticket.Seat), err)
		// a taken seat is an expected outcome, not a failure of the store
		if !isConflict(wrapped) {
			r.log.Error("Failed to create ticket",
				zap.Error(err),
				zap.String("session_id", ticket.ShowSessionID.String()),
				zap.Int("row", ticket.Row),
				zap.Int("seat", ticket.Seat),
			)
		}
		return wrapped
	}

	return nil
}

// FindByReservationIDs returns the tickets of the given reservations ordered
// by reservation, then row and seat.
func (r *ticketRepository) FindByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) ([]*entity.TicketView, error) {
	if len(reservationIDs) == 0 {
		return []*entity.TicketView{}, nil
	}

	query := `
		SELECT t.id, t.show_session_id, t.reservation_id, t."row", t.seat,
		       ss.show_time, s.title, d.name
		FROM tickets t
		JOIN show_sessions ss ON ss.id = t.show_session_id
		JOIN astronomy_shows s ON s.id = ss.astronomy_show_id
		JOIN domes d ON d.id = ss.dome_id
		WHERE t.reservation_id = ANY($1)
		ORDER BY t.reservation_id, t."row", t.seat
	`

	rows, err := r.db.Query(ctx, query, reservationIDs)
	if err != nil {
		r.log.Error("Failed to load reservation tickets",
			zap.Error(err),
			zap.Int("reservations", len(reservationIDs)),
		)
		return nil, wrapDBErr("load reservation tickets", err)
	}
	defer rows.Close()

	tickets := make([]*entity.TicketView, 0)
	for rows.Next() {
		var t entity.TicketView
		err := rows.Scan(
			&t.ID,
			&t.ShowSessionID,
			&t.ReservationID,
			&t.Row,
			&t.Seat,
			&t.ShowTime,
			&t.AstronomyShowTitle,
			&t.DomeName,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return tickets, nil
}
