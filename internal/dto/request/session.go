package request

import "time"

type ShowSessionRequest struct {
	AstronomyShow string    `json:"astronomy_show" validate:"required,uuid"`
	Dome          string    `json:"planetarium_dome" validate:"required,uuid"`
	ShowTime      time.Time `json:"show_time" validate:"required"`
}

type ShowSessionUpdateRequest struct {
	AstronomyShow *string    `json:"astronomy_show,omitempty" validate:"omitempty,uuid"`
	Dome          *string    `json:"planetarium_dome,omitempty" validate:"omitempty,uuid"`
	ShowTime      *time.Time `json:"show_time,omitempty"`
}

// ShowSessionFilter holds the raw query values of the session listing.
type ShowSessionFilter struct {
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AstronomyShow string `json:"astronomy_show" validate:"omitempty,uuid"`
}
