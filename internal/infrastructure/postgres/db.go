package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorbit/lms-api/internal/domain/repository"
)

// Repository error taxonomy, shared with the domain layer so services can
// match without importing this package.
var (
	ErrNotFound  = repository.ErrNotFound
	ErrDuplicate = repository.ErrDuplicate
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so every
// repository can run either standalone or inside an explicit transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapError converts low-level pgx failures into the repository error taxonomy.
// A foreign-key violation means the referenced row does not exist, so it maps
// to ErrNotFound. Everything else propagates unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrNotFound
		}
	}
	return err
}

// defaultGuard is assumed when a role or permission is created without one;
// it matches the schema default.
const defaultGuard = "api"

func guardOrDefault(guard string) string {
	if guard == "" {
		return defaultGuard
	}
	return guard
}

// runInTx acquires a transaction, runs fn, and commits. Rollback is
// guaranteed on every exit path other than a successful commit.
func runInTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
