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

type DomeRepository interface {
	Create(ctx context.Context, dome *entity.Dome) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dome, error)
	FindAll(ctx context.Context) ([]*entity.Dome, error)
	Update(ctx context.Context, dome *entity.Dome) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type domeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewDomeRepository(db database.Querier, log *zap.Logger) DomeRepository {
	return &domeRepository{
		db:  db,
		log: log.With(zap.String("repository", "dome")),
	}
}

func (r *domeRepository) Create(ctx context.Context, dome *entity.Dome) error {
	query := `
		INSERT INTO domes (id, name, "rows", seats_in_row, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		dome.ID,
		dome.Name,
		dome.Rows,
		dome.SeatsInRow,
		dome.CreatedAt,
		dome.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create dome",
			zap.Error(err),
			zap.String("name", dome.Name),
		)
		return wrapDBErr("create dome "+dome.Name, err)
	}

	return nil
}

func (r *domeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dome, error) {
	query := `
		SELECT id, name, "rows", seats_in_row, created_at, updated_at
		FROM domes
		WHERE id = $1
	`

	var dome entity.Dome
	err := r.db.QueryRow(ctx, query, id).Scan(
		&dome.ID,
		&dome.Name,
		&dome.Rows,
		&dome.SeatsInRow,
		&dome.CreatedAt,
		&dome.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find dome by ID",
			zap.Error(err),
			zap.String("dome_id", id.String()),
		)
		return nil, wrapDBErr("find dome by ID "+id.String(), err)
	}

	return &dome, nil
}

func (r *domeRepository) FindAll(ctx context.Context) ([]*entity.Dome, error) {
	query := `
		SELECT id, name, "rows", seats_in_row, created_at, updated_at
		FROM domes
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list domes", zap.Error(err))
		return nil, wrapDBErr("list domes", err)
	}
	defer rows.Close()

	domes := make([]*entity.Dome, 0)
	for rows.Next() {
		var dome entity.Dome
		err := rows.Scan(
			&dome.ID,
			&dome.Name,
			&dome.Rows,
			&dome.SeatsInRow,
			&dome.CreatedAt,
			&dome.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan dome row", zap.Error(err))
			return nil, fmt.Errorf("scan dome row: %w", err)
		}
		domes = append(domes, &dome)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dome rows: %w", err)
	}

	return domes, nil
}

func (r *domeRepository) Update(ctx context.Context, dome *entity.Dome) error {
	query := `
		UPDATE domes
		SET name = $2, "rows" = $3, seats_in_row = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		dome.ID,
		dome.Name,
		dome.Rows,
		dome.SeatsInRow,
		dome.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update dome",
			zap.Error(err),
			zap.String("dome_id", dome.ID.String()),
		)
		return wrapDBErr("update dome "+dome.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("dome %s: %w", dome.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *domeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM domes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete dome",
			zap.Error(err),
			zap.String("dome_id", id.String()),
		)
		return wrapDBErr("delete dome "+id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("dome %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Dome deleted", zap.String("dome_id", id.String()))
	return nil
}
