package response

import (
	"time"

	"planetarium-booking/internal/data/entity"
)

type ShowSessionResponse struct {
	ID              string    `json:"id"`
	AstronomyShowID string    `json:"astronomy_show"`
	DomeID          string    `json:"planetarium_dome"`
	ShowTime        time.Time `json:"show_time"`
}

type ShowSessionListResponse struct {
	ID                 string    `json:"id"`
	ShowTime           time.Time `json:"show_time"`
	AstronomyShowTitle string    `json:"astronomy_show_title"`
	DomeName           string    `json:"planetarium_dome_name"`
	DomeCapacity       int       `json:"planetarium_dome_capacity"`
	TicketsAvailable   int       `json:"tickets_available"`
}

type PlaceResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type ShowSessionDetailResponse struct {
	ID               string                      `json:"id"`
	ShowTime         time.Time                   `json:"show_time"`
	AstronomyShow    AstronomyShowDetailResponse `json:"astronomy_show"`
	Dome             DomeResponse                `json:"planetarium_dome"`
	TakenPlaces      []PlaceResponse             `json:"taken_places"`
	TicketsAvailable int                         `json:"tickets_available"`
}

func ShowSessionToResponse(session *entity.ShowSession) ShowSessionResponse {
	return ShowSessionResponse{
		ID:              session.ID.String(),
		AstronomyShowID: session.AstronomyShowID.String(),
		DomeID:          session.DomeID.String(),
		ShowTime:        session.ShowTime,
	}
}

func ShowSessionToListResponse(view *entity.ShowSessionView) ShowSessionListResponse {
	return ShowSessionListResponse{
		ID:                 view.ID.String(),
		ShowTime:           view.ShowTime,
		AstronomyShowTitle: view.AstronomyShowTitle,
		DomeName:           view.DomeName,
		DomeCapacity:       view.DomeCapacity(),
		TicketsAvailable:   view.TicketsAvailable(),
	}
}

func PlacesToResponse(places []entity.Place) []PlaceResponse {
	out := make([]PlaceResponse, len(places))
	for i, p := range places {
		out[i] = PlaceResponse{Row: p.Row, Seat: p.Seat}
	}
	return out
}
