package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505"}), ErrDuplicate)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23503"}), ErrNotFound,
		"foreign-key violation means the referenced row is missing")

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
	assert.NotErrorIs(t, mapError(&pgconn.PgError{Code: "40001"}), ErrNotFound)
}

func TestGuardOrDefault(t *testing.T) {
	assert.Equal(t, "api", guardOrDefault(""))
	assert.Equal(t, "web", guardOrDefault("web"))
}
