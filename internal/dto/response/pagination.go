package response

// PaginatedResponse wraps one page of items. Data is never null in JSON.
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta describes the page returned and how many pages exist.
// PerPage is the effective page size after capping, not the requested one.
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: pageCount(total, perPage),
		},
	}
}

func pageCount(total int64, perPage int) int {
	if perPage < 1 || total < 1 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
