package request

type DomeRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	Rows       int    `json:"rows" validate:"required,min=1"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,min=1"`
}

type DomeUpdateRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Rows       *int    `json:"rows,omitempty" validate:"omitempty,min=1"`
	SeatsInRow *int    `json:"seats_in_row,omitempty" validate:"omitempty,min=1"`
}
