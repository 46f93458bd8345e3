package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the querying surface every repository runs against. It is
// satisfied by *pgxpool.Pool, by pgx.Tx and by pgxmock pools, so the same
// repository code serves the shared pool, a transaction scope, and tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB adds transaction initiation for services that own multi-row atomic
// operations.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
