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

type ShowThemeRepository interface {
	Create(ctx context.Context, theme *entity.ShowTheme) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTheme, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ShowTheme, error)
	FindAll(ctx context.Context) ([]*entity.ShowTheme, error)
	FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.ShowTheme, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type showThemeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewShowThemeRepository(db database.Querier, log *zap.Logger) ShowThemeRepository {
	return &showThemeRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_theme")),
	}
}

func (r *showThemeRepository) Create(ctx context.Context, theme *entity.ShowTheme) error {
	query := `INSERT INTO show_themes (id, name, created_at) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, theme.ID, theme.Name, theme.CreatedAt); err != nil {
		r.log.Error("Failed to create show theme",
			zap.Error(err),
			zap.String("name", theme.Name),
		)
		return wrapDBErr("create show theme "+theme.Name, err)
	}

	return nil
}

func (r *showThemeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTheme, error) {
	query := `SELECT id, name, created_at FROM show_themes WHERE id = $1`

	var theme entity.ShowTheme
	err := r.db.QueryRow(ctx, query, id).Scan(&theme.ID, &theme.Name, &theme.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show theme", zap.Error(err), zap.String("theme_id", id.String()))
		return nil, wrapDBErr("find show theme "+id.String(), err)
	}

	return &theme, nil
}

func (r *showThemeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ShowTheme, error) {
	if len(ids) == 0 {
		return []*entity.ShowTheme{}, nil
	}

	query := `SELECT id, name, created_at FROM show_themes WHERE id = ANY($1) ORDER BY name`
	return r.list(ctx, "find show themes by ids", query, ids)
}

func (r *showThemeRepository) FindAll(ctx context.Context) ([]*entity.ShowTheme, error) {
	query := `SELECT id, name, created_at FROM show_themes ORDER BY name`
	return r.list(ctx, "list show themes", query)
}

func (r *showThemeRepository) FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.ShowTheme, error) {
	query := `
		SELECT t.id, t.name, t.created_at
		FROM show_themes t
		JOIN astronomy_show_themes ast ON ast.show_theme_id = t.id
		WHERE ast.astronomy_show_id = $1
		ORDER BY t.name
	`
	return r.list(ctx, "find show themes by show "+showID.String(), query, showID)
}

func (r *showThemeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM show_themes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete show theme", zap.Error(err), zap.String("theme_id", id.String()))
		return wrapDBErr("delete show theme "+id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show theme %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *showThemeRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.ShowTheme, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query show themes", zap.Error(err), zap.String("op", op))
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	themes := make([]*entity.ShowTheme, 0)
	for rows.Next() {
		var theme entity.ShowTheme
		if err := rows.Scan(&theme.ID, &theme.Name, &theme.CreatedAt); err != nil {
			r.log.Error("Failed to scan show theme row", zap.Error(err))
			return nil, fmt.Errorf("scan show theme row: %w", err)
		}
		themes = append(themes, &theme)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return themes, nil
}
