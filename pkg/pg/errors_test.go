package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/wendisay28/buscartpro/pkg/pg"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("query: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(nil))
	assert.False(t, pg.IsNotFoundError(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.True(t, pg.IsUniqueViolation(dup))
	assert.True(t, pg.IsUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, pg.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pg.IsUniqueViolation(nil))
}

func TestUniqueConstraint(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}
	assert.Equal(t, "users_pkey", pg.UniqueConstraint(dup))
	assert.Equal(t, "", pg.UniqueConstraint(errors.New("boom")))
	assert.Equal(t, "", pg.UniqueConstraint(nil))
}
