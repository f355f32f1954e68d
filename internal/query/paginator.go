// Package query holds the event listing engine: the paginator, the time-window
// filter compiler, the attendee count attacher and the assembler that composes
// them into listing variants. It only talks to domain.Query, never to a driver.
package query

import (
	"context"
	"fmt"

	"eventrsvp/internal/domain"
)

// Paginate runs q for one page and wraps the rows in a page envelope.
// With opts.CountTotal it runs a second count-only pass over the same query
// (without limit and offset) and fills Total and Last.
func Paginate[T any](ctx context.Context, q domain.Query[T], opts domain.PaginateOptions) (*domain.Page[T], error) {
	if opts.Limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput)
	}
	if opts.OffsetOverflows() {
		return nil, fmt.Errorf("%w: page %d is out of range", domain.ErrInvalidInput, opts.CurrentPage)
	}

	data, err := q.Limit(opts.Limit).Offset(opts.Offset()).Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("paginate: %w", err)
	}
	if data == nil {
		data = []T{}
	}

	page := &domain.Page[T]{
		Data:        data,
		First:       1,
		Limit:       opts.Limit,
		CurrentPage: opts.Page(),
	}
	if !opts.CountTotal {
		return page, nil
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("paginate count: %w", err)
	}
	last := domain.LastPage(total, opts.Limit)
	page.Total = &total
	page.Last = &last
	return page, nil
}
