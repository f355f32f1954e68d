package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"
)

type fragment struct {
	sql  string
	args []any
}

// scanFunc scans the current row. cols are the result column names so the
// scanner can pick up optional projections.
type scanFunc[T any] func(cols []string, rows *sql.Rows) (T, error)

// selectQuery implements domain.Query on database/sql. Builder methods copy
// the receiver, so a query can be extended in several directions.
type selectQuery[T any] struct {
	db      *sql.DB
	name    string
	from    string
	columns []string
	selects []fragment
	joins   []fragment
	wheres  []fragment
	orders  []string
	limit   int
	offset  int
	scan    scanFunc[T]
}

func newSelectQuery[T any](db *sql.DB, name, from string, columns []string, scan scanFunc[T]) *selectQuery[T] {
	return &selectQuery[T]{
		db:      db,
		name:    name,
		from:    from,
		columns: columns,
		limit:   -1,
		scan:    scan,
	}
}

func (q *selectQuery[T]) clone() *selectQuery[T] {
	c := *q
	c.selects = slices.Clone(q.selects)
	c.joins = slices.Clone(q.joins)
	c.wheres = slices.Clone(q.wheres)
	c.orders = slices.Clone(q.orders)
	return &c
}

func (q *selectQuery[T]) Where(predicate string, args ...any) domain.Query[T] {
	c := q.clone()
	c.wheres = append(c.wheres, fragment{sql: predicate, args: args})
	return c
}

func (q *selectQuery[T]) Join(clause string, args ...any) domain.Query[T] {
	c := q.clone()
	c.joins = append(c.joins, fragment{sql: clause, args: args})
	return c
}

func (q *selectQuery[T]) Select(expr, alias string, args ...any) domain.Query[T] {
	c := q.clone()
	c.selects = append(c.selects, fragment{sql: "(" + expr + ") AS " + alias, args: args})
	return c
}

func (q *selectQuery[T]) OrderBy(term string) domain.Query[T] {
	c := q.clone()
	c.orders = append(c.orders, term)
	return c
}

func (q *selectQuery[T]) Limit(n int) domain.Query[T] {
	c := q.clone()
	c.limit = n
	return c
}

func (q *selectQuery[T]) Offset(n int) domain.Query[T] {
	c := q.clone()
	c.offset = n
	return c
}

// writeBody writes FROM, joins and predicates, which the data and count
// statements share.
func (q *selectQuery[T]) writeBody(b *strings.Builder, args []any) []any {
	b.WriteString(" FROM ")
	b.WriteString(q.from)
	for _, j := range q.joins {
		b.WriteString(" ")
		b.WriteString(j.sql)
		args = append(args, j.args...)
	}
	for i, w := range q.wheres {
		if i == 0 {
			b.WriteString(" WHERE (")
		} else {
			b.WriteString(" AND (")
		}
		b.WriteString(w.sql)
		b.WriteString(")")
		args = append(args, w.args...)
	}
	return args
}

// SQL returns the data statement and its arguments.
func (q *selectQuery[T]) SQL() (string, []any) {
	var b strings.Builder
	var args []any
	cols := slices.Clone(q.columns)
	for _, s := range q.selects {
		cols = append(cols, s.sql)
		args = append(args, s.args...)
	}
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	args = q.writeBody(&b, args)
	if len(q.orders) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orders, ", "))
	}
	if q.limit >= 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	if q.offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", q.offset)
	}
	return rebind(b.String()), args
}

// CountSQL returns the count statement and its arguments. Projections,
// ordering, limit and offset do not affect the count and are left out.
func (q *selectQuery[T]) CountSQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*)")
	args := q.writeBody(&b, nil)
	return rebind(b.String()), args
}

func (q *selectQuery[T]) Find(ctx context.Context) (out []T, err error) {
	done := metrics.ObserveDB(q.name + "_find")
	defer func() { done(err) }()

	stmt, args := q.SQL()
	rows, err := q.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out = make([]T, 0)
	for rows.Next() {
		v, err := q.scan(cols, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *selectQuery[T]) Count(ctx context.Context) (n int, err error) {
	done := metrics.ObserveDB(q.name + "_count")
	defer func() { done(err) }()

	stmt, args := q.CountSQL()
	err = q.db.QueryRowContext(ctx, stmt, args...).Scan(&n)
	return n, err
}

// rebind turns ? placeholders into $1, $2, ... in order of appearance.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
