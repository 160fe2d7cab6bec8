package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// IsExclusionConflict reports a Postgres exclusion or unique violation, which
// is how the database rejects a double booking that slipped past the check.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
}
