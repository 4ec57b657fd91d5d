package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionFilter narrows the session listing. Nil fields disable a filter.
type SessionFilter struct {
	// Date matches the calendar date of show_time, time of day ignored.
	Date            *time.Time
	AstronomyShowID *uuid.UUID
}

type ShowSessionRepository interface {
	Create(ctx context.Context, session *entity.ShowSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowSession, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*entity.ShowSessionView, error)
	FindAll(ctx context.Context, filter SessionFilter) ([]*entity.ShowSessionView, error)
	TakenPlaces(ctx context.Context, id uuid.UUID) ([]entity.Place, error)
	Update(ctx context.Context, session *entity.ShowSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type showSessionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewShowSessionRepository(db database.Querier, log *zap.Logger) ShowSessionRepository {
	return &showSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_session")),
	}
}

// tickets_sold is counted on every read; availability is never stored.
const sessionViewQuery = `
	SELECT ss.id, ss.astronomy_show_id, ss.dome_id, ss.show_time, ss.created_at, ss.updated_at,
	       s.title, d.name, d."rows", d.seats_in_row,
	       (SELECT COUNT(*) FROM tickets t WHERE t.show_session_id = ss.id) AS tickets_sold
	FROM show_sessions ss
	JOIN astronomy_shows s ON s.id = ss.astronomy_show_id
	JOIN domes d ON d.id = ss.dome_id
`

func (r *showSessionRepository) Create(ctx context.Context, session *entity.ShowSession) error {
	query := `
		INSERT INTO show_sessions (id, astronomy_show_id, dome_id, show_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.AstronomyShowID,
		session.DomeID,
		session.ShowTime,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show session",
			zap.Error(err),
			zap.String("astronomy_show_id", session.AstronomyShowID.String()),
			zap.String("dome_id", session.DomeID.String()),
		)
		return wrapDBErr("create show session", err)
	}

	return nil
}

func (r *showSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowSession, error) {
	query := `
		SELECT id, astronomy_show_id, dome_id, show_time, created_at, updated_at
		FROM show_sessions
		WHERE id = $1
	`

	var session entity.ShowSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.AstronomyShowID,
		&session.DomeID,
		&session.ShowTime,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show session by ID",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, wrapDBErr("find show session by ID "+id.String(), err)
	}

	return &session, nil
}

func (r *showSessionRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*entity.ShowSessionView, error) {
	query := sessionViewQuery + ` WHERE ss.id = $1`

	view, err := scanSessionView(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show session view",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, wrapDBErr("find show session view "+id.String(), err)
	}

	return view, nil
}

// FindAll lists sessions ordered by show_time. Filters are AND-combined.
func (r *showSessionRepository) FindAll(ctx context.Context, filter SessionFilter) ([]*entity.ShowSessionView, error) {
	var (
		where []string
		args  []any
	)

	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		where = append(where, fmt.Sprintf("ss.show_time::date = $%d::date", len(args)))
	}
	if filter.AstronomyShowID != nil {
		args = append(args, *filter.AstronomyShowID)
		where = append(where, fmt.Sprintf("ss.astronomy_show_id = $%d", len(args)))
	}

	query := sessionViewQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY ss.show_time, ss.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list show sessions", zap.Error(err))
		return nil, wrapDBErr("list show sessions", err)
	}
	defer rows.Close()

	sessions := make([]*entity.ShowSessionView, 0)
	for rows.Next() {
		view, err := scanSessionView(rows)
		if err != nil {
			r.log.Error("Failed to scan show session row", zap.Error(err))
			return nil, fmt.Errorf("scan show session row: %w", err)
		}
		sessions = append(sessions, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show session rows: %w", err)
	}

	return sessions, nil
}

// TakenPlaces returns the occupied (row, seat) pairs ordered by row, seat.
func (r *showSessionRepository) TakenPlaces(ctx context.Context, id uuid.UUID) ([]entity.Place, error) {
	query := `
		SELECT "row", seat
		FROM tickets
		WHERE show_session_id = $1
		ORDER BY "row", seat
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to load taken places",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, wrapDBErr("load taken places", err)
	}
	defer rows.Close()

	places := make([]entity.Place, 0)
	for rows.Next() {
		var p entity.Place
		if err := rows.Scan(&p.Row, &p.Seat); err != nil {
			return nil, fmt.Errorf("scan taken place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate taken places: %w", err)
	}

	return places, nil
}

func (r *showSessionRepository) Update(ctx context.Context, session *entity.ShowSession) error {
	query := `
		UPDATE show_sessions
		SET astronomy_show_id = $2, dome_id = $3, show_time = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		session.ID,
		session.AstronomyShowID,
		session.DomeID,
		session.ShowTime,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update show session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
		)
		return wrapDBErr("update show session "+session.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show session %s: %w", session.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *showSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM show_sessions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete show session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return wrapDBErr("delete show session "+id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show session %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Show session deleted", zap.String("session_id", id.String()))
	return nil
}

func scanSessionView(row pgx.Row) (*entity.ShowSessionView, error) {
	var v entity.ShowSessionView
	err := row.Scan(
		&v.ID,
		&v.AstronomyShowID,
		&v.DomeID,
		&v.ShowTime,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.AstronomyShowTitle,
		&v.DomeName,
		&v.DomeRows,
		&v.DomeSeatsInRow,
		&v.TicketsSold,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
