package query

// Pagination is returned alongside every list response.
type Pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	ItemsPerPage int   `json:"items_per_page"`
}

// Result is one page of T plus its pagination metadata.
type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes total_pages = ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	page, limit = PageBounds(page, limit)
	pages := int(total / int64(limit))
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{
		TotalItems:   total,
		TotalPages:   pages,
		CurrentPage:  page,
		ItemsPerPage: limit,
	}
}
