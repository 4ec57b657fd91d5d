package response

import (
	"time"

	"planetarium-booking/internal/data/entity"
)

type DomeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Rows       int       `json:"rows"`
	SeatsInRow int       `json:"seats_in_row"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func DomeToResponse(dome *entity.Dome) DomeResponse {
	return DomeResponse{
		ID:         dome.ID.String(),
		Name:       dome.Name,
		Rows:       dome.Rows,
		SeatsInRow: dome.SeatsInRow,
		Capacity:   dome.Capacity(),
		CreatedAt:  dome.CreatedAt,
		UpdatedAt:  dome.UpdatedAt,
	}
}
