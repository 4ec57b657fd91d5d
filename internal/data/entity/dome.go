package entity

// Dome is a projection hall with a fixed rows x seats_in_row grid.
type Dome struct {
	Record
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
}

// Capacity is the total number of seats in the grid.
func (d *Dome) Capacity() int {
	return d.Rows * d.SeatsInRow
}

// HasRow reports whether row is a valid 1-based row of the grid.
func (d *Dome) HasRow(row int) bool {
	return row >= 1 && row <= d.Rows
}

// HasSeat reports whether seat is a valid 1-based seat inside a row.
func (d *Dome) HasSeat(seat int) bool {
	return seat >= 1 && seat <= d.SeatsInRow
}
