package entity

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	CreatedRecord
	UserID  uuid.UUID `db:"user_id"`
	Tickets []*Ticket `db:"-"`
}

// Ticket occupies one (row, seat) of a show session.
type Ticket struct {
	ID            uuid.UUID `db:"id"`
	ShowSessionID uuid.UUID `db:"show_session_id"`
	ReservationID uuid.UUID `db:"reservation_id"`
	Row           int       `db:"row"`
	Seat          int       `db:"seat"`
}

// Place is a (row, seat) pair.
type Place struct {
	Row  int `db:"row"`
	Seat int `db:"seat"`
}

// TicketView is a ticket joined with the session it belongs to.
type TicketView struct {
	Ticket
	ShowTime           time.Time `db:"show_time"`
	AstronomyShowTitle string    `db:"astronomy_show_title"`
	DomeName           string    `db:"dome_name"`
}
