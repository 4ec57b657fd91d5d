package entity

import (
	"time"

	"github.com/google/uuid"
)

type ShowSession struct {
	Record
	AstronomyShowID uuid.UUID `db:"astronomy_show_id"`
	DomeID          uuid.UUID `db:"dome_id"`
	ShowTime        time.Time `db:"show_time"`
}

// ShowSessionView is a session joined with its show and dome plus the number
// of tickets sold so far.
type ShowSessionView struct {
	ShowSession
	AstronomyShowTitle string `db:"astronomy_show_title"`
	DomeName           string `db:"dome_name"`
	DomeRows           int    `db:"dome_rows"`
	DomeSeatsInRow     int    `db:"dome_seats_in_row"`
	TicketsSold        int    `db:"tickets_sold"`
}

func (v *ShowSessionView) DomeCapacity() int {
	return v.DomeRows * v.DomeSeatsInRow
}

// TicketsAvailable never goes below zero, even after a dome was shrunk.
func (v *ShowSessionView) TicketsAvailable() int {
	available := v.DomeCapacity() - v.TicketsSold
	if available < 0 {
		return 0
	}
	return available
}
