package request

type AstronomyShowRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description"`
	ShowThemes  []string `json:"show_themes,omitempty" validate:"omitempty,dive,uuid"`
}

// AstronomyShowUpdateRequest replaces the theme set only when show_themes is
// present in the body; an empty list clears it.
type AstronomyShowUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty"`
	ShowThemes  []string `json:"show_themes,omitempty" validate:"omitempty,dive,uuid"`
}
