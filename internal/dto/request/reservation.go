package request

// TicketRequest carries no range rules for row and seat: bounds depend on the
// session's dome and are checked inside the reservation transaction.
type TicketRequest struct {
	ShowSession string `json:"show_session" validate:"required,uuid"`
	Row         int    `json:"row"`
	Seat        int    `json:"seat"`
}

type CreateReservationRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}
