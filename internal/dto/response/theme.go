package response

import "planetarium-booking/internal/data/entity"

type ShowThemeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ShowThemeToResponse(theme *entity.ShowTheme) ShowThemeResponse {
	return ShowThemeResponse{
		ID:   theme.ID.String(),
		Name: theme.Name,
	}
}
