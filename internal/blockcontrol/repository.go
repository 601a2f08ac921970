package blockcontrol

import (
	"context"
	"database/sql"
	"errors"
)

// ErrMissing means the singleton row is absent. That is a deployment fault:
// order admission must fail loudly rather than silently allow ordering.
var ErrMissing = errors.New("block order control row is missing")

type Repository interface {
	EnsureExists(ctx context.Context) error
	Get(ctx context.Context) (BlockOrderControl, error)
	SetBlocked(ctx context.Context, blocked bool) (BlockOrderControl, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// EnsureExists creates the control row on first boot, defaulting to unblocked.
func (r *repository) EnsureExists(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO block_order_control (id, is_blocked, created_at, updated_at)
		VALUES ($1, FALSE, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`,
		singletonID)
	return err
}

func (r *repository) Get(ctx context.Context) (BlockOrderControl, error) {
	var b BlockOrderControl
	err := r.db.QueryRowContext(ctx, `
		SELECT id, is_blocked, created_at, updated_at
		FROM block_order_control WHERE id = $1`,
		singletonID,
	).Scan(&b.ID, &b.IsBlocked, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return b, ErrMissing
	}
	return b, err
}

func (r *repository) SetBlocked(ctx context.Context, blocked bool) (BlockOrderControl, error) {
	var b BlockOrderControl
	err := r.db.QueryRowContext(ctx, `
		UPDATE block_order_control
		SET is_blocked = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, is_blocked, created_at, updated_at`,
		singletonID, blocked,
	).Scan(&b.ID, &b.IsBlocked, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return b, ErrMissing
	}
	return b, err
}
