package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDome_Capacity(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		want       int
	}{
		{"single seat", 1, 1, 1},
		{"small dome", 2, 3, 6},
		{"large dome", 20, 30, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dome{Rows: tt.rows, SeatsInRow: tt.cols}
			assert.Equal(t, tt.want, d.Capacity())
		})
	}
}

func TestDome_Bounds(t *testing.T) {
	d := &Dome{Rows: 2, SeatsInRow: 3}

	assert.True(t, d.HasRow(1))
	assert.True(t, d.HasRow(2))
	assert.False(t, d.HasRow(0))
	assert.False(t, d.HasRow(3))

	assert.True(t, d.HasSeat(3))
	assert.False(t, d.HasSeat(4))
	assert.False(t, d.HasSeat(-1))
}

func TestShowSessionView_TicketsAvailable(t *testing.T) {
	v := &ShowSessionView{DomeRows: 2, DomeSeatsInRow: 3, TicketsSold: 2}
	assert.Equal(t, 6, v.DomeCapacity())
	assert.Equal(t, 4, v.TicketsAvailable())

	shrunk := &ShowSessionView{DomeRows: 1, DomeSeatsInRow: 1, TicketsSold: 3}
	assert.Equal(t, 0, shrunk.TicketsAvailable())
}
