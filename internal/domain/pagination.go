package domain

import "math"

// PaginateOptions holds offset-based pagination parameters for list queries.
type PaginateOptions struct {
	Limit       int
	CurrentPage int
	// CountTotal requests a second, count-only pass so Total and Last can be filled.
	CountTotal bool
}

// Page returns the effective page number; anything below 1 is page 1.
func (p PaginateOptions) Page() int {
	if p.CurrentPage < 1 {
		return 1
	}
	return p.CurrentPage
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * Limit.
func (p PaginateOptions) Offset() int {
	return (p.Page() - 1) * p.Limit
}

// OffsetOverflows reports whether (Page - 1) * Limit does not fit in an int.
func (p PaginateOptions) OffsetOverflows() bool {
	return p.Limit > 0 && p.Page()-1 > math.MaxInt/p.Limit
}

// Page is the envelope returned by paginated listings.
// Total and Last are nil unless the listing counted its total.
type Page[T any] struct {
	Data        []T  `json:"data"`
	First       int  `json:"first"`
	Last        *int `json:"last,omitempty"`
	Limit       int  `json:"limit"`
	Total       *int `json:"total,omitempty"`
	CurrentPage int  `json:"current_page"`
}

// LastPage returns ceiling(total / limit); 0 when total is 0 or limit is not positive.
func LastPage(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// PageLimits holds the page size of each event listing.
type PageLimits struct {
	Events     int
	Attendance int
	Organizer  int
}
