package notification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, orderID, userID uuid.UUID) (Notification, error)
	GetAll(ctx context.Context) ([]Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (Notification, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, orderID, userID uuid.UUID) (Notification, error) {
	var n Notification
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO notifications (id, order_id, user_id, send_date, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW(), NOW())
		RETURNING id, order_id, user_id, send_date, created_at, updated_at`,
		uuid.New(), orderID, userID,
	).Scan(&n.ID, &n.OrderID, &n.UserID, &n.SendDate, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *repository) GetAll(ctx context.Context) ([]Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, user_id, send_date, created_at, updated_at
		FROM notifications ORDER BY send_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.OrderID, &n.UserID, &n.SendDate, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Notification, error) {
	var n Notification
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, user_id, send_date, created_at, updated_at
		FROM notifications WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.OrderID, &n.UserID, &n.SendDate, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return n, ErrNotFound
	}
	return n, err
}
