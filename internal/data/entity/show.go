package entity

import "github.com/google/uuid"

type ShowTheme struct {
	CreatedRecord
	Name string `db:"name"`
}

type AstronomyShow struct {
	Record
	Title       string  `db:"title"`
	Description string  `db:"description"`
	ImagePath   *string `db:"image"`

	// ThemeIDs is loaded from astronomy_show_themes, not a column.
	ThemeIDs []uuid.UUID `db:"-"`
}

// AstronomyShowTheme is a row of the show/theme link table.
type AstronomyShowTheme struct {
	AstronomyShowID uuid.UUID `db:"astronomy_show_id"`
	ShowThemeID     uuid.UUID `db:"show_theme_id"`
}
