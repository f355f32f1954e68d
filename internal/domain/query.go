package domain

import "context"

// Query is a composable SELECT over one entity type, built by the store and
// narrowed by the listing engine. Implementations are immutable: every builder
// method returns a new Query and leaves the receiver untouched, so a base query
// can be shared between a data pass and a count pass.
//
// Fragments use ? placeholders; the store rebinds them to its own syntax in the
// order the fragments appear in the final statement.
type Query[T any] interface {
	// Where adds a predicate. Predicates are combined with AND.
	Where(predicate string, args ...any) Query[T]
	// Join adds a join clause, e.g. "JOIN attendees a ON a.event_id = e.id".
	Join(clause string, args ...any) Query[T]
	// Select adds a scalar projection (column or correlated subquery) under alias.
	Select(expr, alias string, args ...any) Query[T]
	// OrderBy appends an ordering term, e.g. "e.id DESC".
	OrderBy(term string) Query[T]
	Limit(n int) Query[T]
	Offset(n int) Query[T]

	// Find executes the query and returns the rows in declared order.
	Find(ctx context.Context) ([]T, error)
	// Count returns the number of rows matching the predicates and joins,
	// ignoring projections, ordering, limit and offset.
	Count(ctx context.Context) (int, error)
}
