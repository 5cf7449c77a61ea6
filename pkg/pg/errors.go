package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrOpenConnection       = errors.New("failed to open db connection")
	ErrParseConfig          = errors.New("failed to parse db config")
	ErrHealthcheckFailed    = errors.New("db healthcheck failed")
	ErrApplyMigrations      = errors.New("failed to apply migrations")
	ErrMigrationsDirMissing = errors.New("migrations directory not found")
)

// IsNotFoundError detects pgx.ErrNoRows for consistent "not found"
// handling across queries.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation detects PostgreSQL unique constraint violations
// (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// UniqueConstraint returns the name of the violated unique constraint, or
// an empty string if err is not a unique violation. Storage adapters use
// it to tell an id collision apart from an email collision.
func UniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}
