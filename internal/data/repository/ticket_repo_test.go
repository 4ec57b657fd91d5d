package repository

import (
	"context"
	"testing"
	"time"

	"planetarium-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTicketRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTicketRepository(mock, zap.NewNop())
	ticket := &entity.Ticket{
		ID:            uuid.New(),
		ShowSessionID: uuid.New(),
		ReservationID: uuid.New(),
		Row:           2,
		Seat:          7,
	}

	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(ticket.ID, ticket.ShowSessionID, ticket.ReservationID, 2, 7).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), ticket))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_Create_SeatTaken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTicketRepository(mock, zap.NewNop())

	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 1, 1).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tickets_session_row_seat_key"})

	err = repo.Create(context.Background(), &entity.Ticket{ID: uuid.New(), Row: 1, Seat: 1})

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_Create_UnknownSession(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTicketRepository(mock, zap.NewNop())

	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 1, 1).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err = repo.Create(context.Background(), &entity.Ticket{ID: uuid.New(), Row: 1, Seat: 1})

	assert.ErrorIs(t, err, ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_FindByReservationIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTicketRepository(mock, zap.NewNop())
	resID := uuid.New()
	sessionID := uuid.New()
	showTime := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

	rows := mock.NewRows([]string{"id", "show_session_id", "reservation_id", "row", "seat", "show_time", "title", "name"}).
		AddRow(uuid.New(), sessionID, resID, 1, 1, showTime, "Cosmic Dawn", "Main Dome").
		AddRow(uuid.New(), sessionID, resID, 1, 4, showTime, "Cosmic Dawn", "Main Dome")

	mock.ExpectQuery(`FROM tickets t`).
		WithArgs([]uuid.UUID{resID}).
		WillReturnRows(rows)

	tickets, err := repo.FindByReservationIDs(context.Background(), []uuid.UUID{resID})
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, 1, tickets[0].Row)
	assert.Equal(t, 4, tickets[1].Seat)
	assert.Equal(t, "Cosmic Dawn", tickets[1].AstronomyShowTitle)
	assert.Equal(t, "Main Dome", tickets[1].DomeName)
	assert.Equal(t, showTime, tickets[0].ShowTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_FindByReservationIDs_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTicketRepository(mock, zap.NewNop())

	tickets, err := repo.FindByReservationIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
