package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqUniqueViolation     pq.ErrorCode = "23505"
)

// isPQCode reports whether err carries the given Postgres error code.
func isPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
