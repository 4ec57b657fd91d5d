package repository

import (
	"context"
	"errors"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReservationRepository(db database.Querier, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

// Create inserts the reservation. created_at is assigned by the database
// clock and written back into reservation.
func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id)
		VALUES ($1, $2)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, reservation.ID, reservation.UserID).Scan(&reservation.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
		)
		return wrapDBErr("create reservation", err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT id, user_id, created_at FROM reservations WHERE id = $1`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, wrapDBErr("find reservation by ID "+id.String(), err)
	}

	return &reservation, nil
}

// FindByUserID lists a user's reservations, most recent first.
func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list user reservations",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, wrapDBErr("list reservations of user "+userID.String(), err)
	}
	defer rows.Close()

	reservations := make([]*entity.Reservation, 0)
	for rows.Next() {
		var reservation entity.Reservation
		if err := rows.Scan(&reservation.ID, &reservation.UserID, &reservation.CreatedAt); err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count user reservations",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, wrapDBErr("count reservations", err)
	}

	return count, nil
}

// Delete removes the reservation; its tickets go with it (ON DELETE CASCADE).
func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return wrapDBErr("delete reservation "+id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
