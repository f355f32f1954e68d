package query

import (
	"context"

	"eventrsvp/internal/domain"
)

type op struct {
	kind  string
	sql   string
	alias string
	args  []any
	n     int
}

// fakeStore backs fakeQuery: it holds the rows and records every execution.
type fakeStore[T any] struct {
	rows     []T
	findErr  error
	countErr error
	finds    [][]op
	counts   [][]op
}

// fakeQuery is an immutable, recording domain.Query. Find honors the last
// Limit/Offset in its ops; Count returns len(rows).
type fakeQuery[T any] struct {
	store *fakeStore[T]
	ops   []op
}

func newFakeQuery[T any](rows ...T) *fakeQuery[T] {
	return &fakeQuery[T]{store: &fakeStore[T]{rows: rows}}
}

func (q *fakeQuery[T]) with(o op) domain.Query[T] {
	ops := make([]op, len(q.ops), len(q.ops)+1)
	copy(ops, q.ops)
	return &fakeQuery[T]{store: q.store, ops: append(ops, o)}
}

func (q *fakeQuery[T]) Where(predicate string, args ...any) domain.Query[T] {
	return q.with(op{kind: "where", sql: predicate, args: args})
}

func (q *fakeQuery[T]) Join(clause string, args ...any) domain.Query[T] {
	return q.with(op{kind: "join", sql: clause, args: args})
}

func (q *fakeQuery[T]) Select(expr, alias string, args ...any) domain.Query[T] {
	return q.with(op{kind: "select", sql: expr, alias: alias, args: args})
}

func (q *fakeQuery[T]) OrderBy(term string) domain.Query[T] {
	return q.with(op{kind: "order", sql: term})
}

func (q *fakeQuery[T]) Limit(n int) domain.Query[T] {
	return q.with(op{kind: "limit", n: n})
}

func (q *fakeQuery[T]) Offset(n int) domain.Query[T] {
	return q.with(op{kind: "offset", n: n})
}

func (q *fakeQuery[T]) Find(ctx context.Context) ([]T, error) {
	q.store.finds = append(q.store.finds, q.ops)
	if q.store.findErr != nil {
		return nil, q.store.findErr
	}
	limit, offset := -1, 0
	for _, o := range q.ops {
		switch o.kind {
		case "limit":
			limit = o.n
		case "offset":
			offset = o.n
		}
	}
	if offset >= len(q.store.rows) {
		return nil, nil
	}
	out := q.store.rows[offset:]
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (q *fakeQuery[T]) Count(ctx context.Context) (int, error) {
	q.store.counts = append(q.store.counts, q.ops)
	if q.store.countErr != nil {
		return 0, q.store.countErr
	}
	return len(q.store.rows), nil
}

func opsOfKind(ops []op, kind string) []op {
	var out []op
	for _, o := range ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// fakeSource is an EventSource over a fakeQuery.
type fakeSource struct {
	q *fakeQuery[*domain.Event]
}

func (s fakeSource) Query() domain.Query[*domain.Event] {
	return s.q
}
