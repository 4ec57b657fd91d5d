package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ShowFilter narrows the show listing. Zero values disable a filter.
type ShowFilter struct {
	Title    string
	ThemeIDs []uuid.UUID
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type AstronomyShowRepository interface {
	Create(ctx context.Context, show *entity.AstronomyShow) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AstronomyShow, error)
	FindAll(ctx context.Context, filter ShowFilter) ([]*entity.AstronomyShow, error)
	Update(ctx context.Context, show *entity.AstronomyShow) error
	UpdateImage(ctx context.Context, id uuid.UUID, imagePath string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Theme links
	ReplaceThemes(ctx context.Context, showID uuid.UUID, themeIDs []uuid.UUID) error
}

type astronomyShowRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAstronomyShowRepository(db database.Querier, log *zap.Logger) AstronomyShowRepository {
	return &astronomyShowRepository{
		db:  db,
		log: log.With(zap.String("repository", "astronomy_show")),
	}
}

func (r *astronomyShowRepository) Create(ctx context.Context, show *entity.AstronomyShow) error {
	query := `
		INSERT INTO astronomy_shows (id, title, description, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		show.ID,
		show.Title,
		show.Description,
		show.ImagePath,
		show.CreatedAt,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create astronomy show",
			zap.Error(err),
			zap.String("title", show.Title),
		)
		return wrapDBErr("create astronomy show "+show.Title, err)
	}

	return nil
}

func (r *astronomyShowRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AstronomyShow, error) {
	query := `
		SELECT id, title, description, image, created_at, updated_at
		FROM astronomy_shows
		WHERE id = $1
	`

	var show entity.AstronomyShow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.Title,
		&show.Description,
		&show.ImagePath,
		&show.CreatedAt,
		&show.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find astronomy show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, wrapDBErr("find astronomy show by ID "+id.String(), err)
	}

	links, err := r.themeLinks(ctx, []uuid.UUID{show.ID})
	if err != nil {
		return nil, err
	}
	show.ThemeIDs = links[show.ID]

	return &show, nil
}

// FindAll lists shows ordered by title. Filters are AND-combined; a theme
// filter matches shows linked to at least one of the ids.
func (r *astronomyShowRepository) FindAll(ctx context.Context, filter ShowFilter) ([]*entity.AstronomyShow, error) {
	var (
		where []string
		args  []any
	)

	if filter.Title != "" {
		args = append(args, likeEscaper.Replace(filter.Title))
		where = append(where, fmt.Sprintf("s.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if len(filter.ThemeIDs) > 0 {
		args = append(args, filter.ThemeIDs)
		where = append(where, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM astronomy_show_themes ast
			WHERE ast.astronomy_show_id = s.id AND ast.show_theme_id = ANY($%d)
		)`, len(args)))
	}

	query := `SELECT s.id, s.title, s.description, s.image, s.created_at, s.updated_at FROM astronomy_shows s`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.title"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list astronomy shows",
			zap.Error(err),
			zap.String("title", filter.Title),
			zap.Int("theme_filter", len(filter.ThemeIDs)),
		)
		return nil, wrapDBErr("list astronomy shows", err)
	}
	defer rows.Close()

	shows := make([]*entity.AstronomyShow, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var show entity.AstronomyShow
		err := rows.Scan(
			&show.ID,
			&show.Title,
			&show.Description,
			&show.ImagePath,
			&show.CreatedAt,
			&show.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan astronomy show row", zap.Error(err))
			return nil, fmt.Errorf("scan astronomy show row: %w", err)
		}
		shows = append(shows, &show)
		ids = append(ids, show.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate astronomy show rows: %w", err)
	}

	if len(ids) == 0 {
		return shows, nil
	}

	links, err := r.themeLinks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, show := range shows {
		show.ThemeIDs = links[show.ID]
	}

	return shows, nil
}

func (r *astronomyShowRepository) Update(ctx context.Context, show *entity.AstronomyShow) error {
	query := `
		UPDATE astronomy_shows
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		show.ID,
		show.Title,
		show.Description,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update astronomy show",
			zap.Error(err),
			zap.String("show_id", show.ID.String()),
		)
		return wrapDBErr("update astronomy show "+show.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("astronomy show %s: %w", show.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *astronomyShowRepository) UpdateImage(ctx context.Context, id uuid.UUID, imagePath string) error {
	query := `UPDATE astronomy_shows SET image = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, imagePath)
	if err != nil {
		r.log.Error("Failed to update astronomy show image",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return wrapDBErr("update astronomy show image "+id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("astronomy show %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *astronomyShowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM astronomy_shows WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete astronomy show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return wrapDBErr("delete astronomy show "+id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("astronomy show %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Astronomy show deleted", zap.String("show_id", id.String()))
	return nil
}

// ReplaceThemes swaps the full theme set of a show. Run it inside a unit of
// work so the delete and insert land together.
func (r *astronomyShowRepository) ReplaceThemes(ctx context.Context, showID uuid.UUID, themeIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM astronomy_show_themes WHERE astronomy_show_id = $1`, showID); err != nil {
		r.log.Error("Failed to delete show theme links",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return wrapDBErr("delete show theme links", err)
	}

	if len(themeIDs) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO astronomy_show_themes (astronomy_show_id, show_theme_id) VALUES `
	args := make([]any, 0, len(themeIDs)*2)

	for i, themeID := range themeIDs {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
		args = append(args, showID, themeID)
	}
	query += " ON CONFLICT DO NOTHING"

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create show theme links",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.Int("count", len(themeIDs)),
		)
		return wrapDBErr("create show theme links", err)
	}

	return nil
}

func (r *astronomyShowRepository) themeLinks(ctx context.Context, showIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	query := `
		SELECT ast.astronomy_show_id, ast.show_theme_id
		FROM astronomy_show_themes ast
		JOIN show_themes t ON t.id = ast.show_theme_id
		WHERE ast.astronomy_show_id = ANY($1)
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query, showIDs)
	if err != nil {
		r.log.Error("Failed to load show theme links", zap.Error(err))
		return nil, wrapDBErr("load show theme links", err)
	}
	defer rows.Close()

	links := make(map[uuid.UUID][]uuid.UUID, len(showIDs))
	for rows.Next() {
		var link entity.AstronomyShowTheme
		if err := rows.Scan(&link.AstronomyShowID, &link.ShowThemeID); err != nil {
			return nil, fmt.Errorf("scan show theme link: %w", err)
		}
		links[link.AstronomyShowID] = append(links[link.AstronomyShowID], link.ShowThemeID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show theme links: %w", err)
	}

	return links, nil
}
