// Package stock owns ingredient consumption and the derived availability
// flags on dishes and drinks. Both the ledger and the evaluator run against a
// Querier so the order-creation transaction can reuse them on its *sql.Tx.
package stock

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
