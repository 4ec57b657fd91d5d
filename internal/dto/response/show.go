package response

import (
	"time"

	"planetarium-booking/internal/data/entity"
)

// MediaURLPrefix is where uploaded files are served from.
const MediaURLPrefix = "/media/"

type AstronomyShowResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *string   `json:"image,omitempty"`
	ShowThemes  []string  `json:"show_themes"`
	CreatedAt   time.Time `json:"created_at"`
}

type AstronomyShowDetailResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       *string             `json:"image,omitempty"`
	ShowThemes  []ShowThemeResponse `json:"show_themes"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// AstronomyShowToResponse lists themes by name; themeNames maps theme id to name.
func AstronomyShowToResponse(show *entity.AstronomyShow, themeNames map[string]string) AstronomyShowResponse {
	names := make([]string, 0, len(show.ThemeIDs))
	for _, id := range show.ThemeIDs {
		if name, ok := themeNames[id.String()]; ok {
			names = append(names, name)
		}
	}

	return AstronomyShowResponse{
		ID:          show.ID.String(),
		Title:       show.Title,
		Description: show.Description,
		Image:       imageURL(show.ImagePath),
		ShowThemes:  names,
		CreatedAt:   show.CreatedAt,
	}
}

func AstronomyShowToDetailResponse(show *entity.AstronomyShow, themes []*entity.ShowTheme) AstronomyShowDetailResponse {
	themeResponses := make([]ShowThemeResponse, len(themes))
	for i, theme := range themes {
		themeResponses[i] = ShowThemeToResponse(theme)
	}

	return AstronomyShowDetailResponse{
		ID:          show.ID.String(),
		Title:       show.Title,
		Description: show.Description,
		Image:       imageURL(show.ImagePath),
		ShowThemes:  themeResponses,
		CreatedAt:   show.CreatedAt,
		UpdatedAt:   show.UpdatedAt,
	}
}

func imageURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	url := MediaURLPrefix + *path
	return &url
}
