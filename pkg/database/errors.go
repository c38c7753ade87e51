package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned by repositories when an insert collides with a
// unique constraint. Callers that pre-check (like registration) still need
// this: two concurrent requests can both pass the check.
var ErrDuplicate = errors.New("duplicate record")

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, unwrapping the pgx driver error gorm passes through.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
