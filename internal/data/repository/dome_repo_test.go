package repository

import (
	"context"
	"testing"
	"time"

	"planetarium-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDomeRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDomeRepository(mock, zap.NewNop())
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM domes").
		WithArgs(id).
		WillReturnRows(mock.NewRows([]string{"id", "name", "rows", "seats_in_row", "created_at", "updated_at"}).
			AddRow(id, "Main Dome", 2, 3, now, now))

	dome, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, dome)
	assert.Equal(t, "Main Dome", dome.Name)
	assert.Equal(t, 6, dome.Capacity())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDomeRepository_FindByID_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDomeRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectQuery("FROM domes").WithArgs(id).WillReturnError(pgx.ErrNoRows)

	dome, err := repo.FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, dome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDomeRepository_Delete_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDomeRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec("DELETE FROM domes").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowSessionRepository_FindAll_Filters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewShowSessionRepository(mock, zap.NewNop())
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	showID := uuid.New()
	sessionID := uuid.New()
	showTime := date.Add(20 * time.Hour)

	rows := mock.NewRows([]string{
		"id", "astronomy_show_id", "dome_id", "show_time", "created_at", "updated_at",
		"title", "name", "rows", "seats_in_row", "tickets_sold",
	}).AddRow(sessionID, showID, uuid.New(), showTime, showTime, showTime, "Cosmic Dawn", "Main Dome", 2, 3, 2)

	mock.ExpectQuery(`ss\.show_time::date = \$1::date AND ss\.astronomy_show_id = \$2`).
		WithArgs("2026-03-14", showID).
		WillReturnRows(rows)

	sessions, err := repo.FindAll(context.Background(), SessionFilter{Date: &date, AstronomyShowID: &showID})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, sessionID, sessions[0].ID)
	assert.Equal(t, 6, sessions[0].DomeCapacity())
	assert.Equal(t, 4, sessions[0].TicketsAvailable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock, zap.NewNop())

	reservation := &entity.Reservation{CreatedRecord: entity.CreatedRecord{ID: uuid.New()}, UserID: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(reservation.ID, reservation.UserID).
		WillReturnRows(mock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectRollback()

	hookRan := false
	err = repo.UoW.Do(context.Background(), func(ctx context.Context, tx *Repository, after func(AfterCommit)) error {
		after(func(context.Context) { hookRan = true })
		if err := tx.Reservation.Create(ctx, reservation); err != nil {
			return err
		}
		// a later ticket hit a taken seat
		return ErrConflict
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.False(t, hookRan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RunsHooksAfterCommit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM domes").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	hookRan := false
	err = repo.UoW.Do(context.Background(), func(ctx context.Context, tx *Repository, after func(AfterCommit)) error {
		assert.Nil(t, tx.UoW)
		after(func(context.Context) { hookRan = true })
		return tx.Dome.Delete(ctx, id)
	})

	assert.NoError(t, err)
	assert.True(t, hookRan)
	assert.NoError(t, mock.ExpectationsWereMet())
}
