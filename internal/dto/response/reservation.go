package response

import (
	"time"

	"planetarium-booking/internal/data/entity"
)

type ShowSessionSummary struct {
	ID                 string    `json:"id"`
	ShowTime           time.Time `json:"show_time"`
	AstronomyShowTitle string    `json:"astronomy_show_title"`
	DomeName           string    `json:"planetarium_dome_name"`
}

type TicketResponse struct {
	ID          string              `json:"id"`
	Row         int                 `json:"row"`
	Seat        int                 `json:"seat"`
	ShowSession *ShowSessionSummary `json:"show_session,omitempty"`
	// ShowSessionID is set when the session summary is not loaded.
	ShowSessionID string `json:"show_session_id,omitempty"`
}

type ReservationResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

// ReservationToResponse renders a freshly created reservation.
func ReservationToResponse(reservation *entity.Reservation) ReservationResponse {
	tickets := make([]TicketResponse, len(reservation.Tickets))
	for i, t := range reservation.Tickets {
		tickets[i] = TicketResponse{
			ID:            t.ID.String(),
			Row:           t.Row,
			Seat:          t.Seat,
			ShowSessionID: t.ShowSessionID.String(),
		}
	}

	return ReservationResponse{
		ID:        reservation.ID.String(),
		CreatedAt: reservation.CreatedAt,
		Tickets:   tickets,
	}
}

func ReservationWithTicketsToResponse(reservation *entity.Reservation, tickets []*entity.TicketView) ReservationResponse {
	out := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		out[i] = TicketResponse{
			ID:   t.ID.String(),
			Row:  t.Row,
			Seat: t.Seat,
			ShowSession: &ShowSessionSummary{
				ID:                 t.ShowSessionID.String(),
				ShowTime:           t.ShowTime,
				AstronomyShowTitle: t.AstronomyShowTitle,
				DomeName:           t.DomeName,
			},
		}
	}

	return ReservationResponse{
		ID:        reservation.ID.String(),
		CreatedAt: reservation.CreatedAt,
		Tickets:   out,
	}
}
