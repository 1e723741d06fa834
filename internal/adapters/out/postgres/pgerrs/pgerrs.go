// Package pgerrs translates PostgreSQL driver errors into the marketplace error taxonomy.
package pgerrs

import (
	"errors"

	"freightdesk/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Conflict wraps unique violations into errs.ConflictError and returns other errors unchanged.
func Conflict(err error, subject, reason string) error {
	if err == nil || !IsUniqueViolation(err) {
		return err
	}
	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)
	return errs.NewConflictErrorWithCause(subject, reason, errors.New(pgErr.ConstraintName))
}
