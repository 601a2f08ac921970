package order

import (
	"context"
	"database/sql"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/stock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx persists the order, its lines and the stock deduction in
	// one transaction. On return the order carries its generated ids, price
	// snapshots and recomputed totals. Any failure rolls everything back.
	CreateOrderTx(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	List(ctx context.Context, filter Filter) ([]Order, error)
	GetDetails(ctx context.Context, orderID uuid.UUID) ([]Detail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	RecomputeTotals(ctx context.Context, orderID uuid.UUID) (totalAmount float64, timeMinutes int, err error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db        *sql.DB
	ledger    stock.Ledger
	evaluator stock.Evaluator
}

func NewRepository(db *sql.DB, ledger stock.Ledger, evaluator stock.Evaluator) Repository {
	return &repository{db: db, ledger: ledger, evaluator: evaluator}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"), zap.String("method", "CreateOrderTx"))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Internal(err)
	}
	defer tx.Rollback()

	// 1. Insert order head with zeroed totals.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_info, user_id, status, total_amount, order_time_minutes, date_of_preparing_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5, NOW(), NOW())`,
		o.ID, o.OrderInfo, o.UserID, o.Status, o.DateOfPreparingOrder)
	if err != nil {
		return apperr.Internal(err)
	}

	// 2. Insert each line with the unit price snapshot read inside the same
	// transaction.
	for i := range o.Details {
		if err := r.insertDetail(ctx, tx, &o.Details[i]); err != nil {
			return err
		}
	}

	// 3. Derived totals.
	o.TotalAmount, o.OrderTimeInMinutes, err = recomputeTotals(ctx, tx, o.ID)
	if err != nil {
		return err
	}

	// 4. Deduct stock per line, then refresh the availability flag of every
	// dish/drink the order touched. Insufficient stock aborts the whole
	// transaction so no partial decrement or ghost order survives.
	for _, d := range o.Details {
		switch {
		case d.DishID != nil:
			if err := r.ledger.DecrementForDish(ctx, tx, *d.DishID, d.Quantity); err != nil {
				return err
			}
			if _, err := r.evaluator.RefreshDish(ctx, tx, *d.DishID); err != nil {
				return err
			}
		case d.DrinkID != nil:
			if err := r.ledger.DecrementForDrink(ctx, tx, *d.DrinkID, d.Quantity); err != nil {
				return err
			}
			if _, err := r.evaluator.RefreshDrink(ctx, tx, *d.DrinkID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal(err)
	}

	log.Info("order persisted",
		zap.String("order_id", o.ID.String()),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Int("order_time_minutes", o.OrderTimeInMinutes),
	)
	return nil
}

// insertDetail snapshots the current catalog price onto the line and persists
// it. The detail must already satisfy the dish-xor-drink invariant.
func (r *repository) insertDetail(ctx context.Context, tx *sql.Tx, d *Detail) error {
	var err error
	switch {
	case d.DishID != nil:
		err = tx.QueryRowContext(ctx,
			`SELECT price FROM dishes WHERE id = $1`, *d.DishID).Scan(&d.UnitPrice)
		if err == sql.ErrNoRows {
			return apperr.Validation("dish not found by id:%s", *d.DishID)
		}
	case d.DrinkID != nil:
		err = tx.QueryRowContext(ctx,
			`SELECT price FROM drinks WHERE id = $1`, *d.DrinkID).Scan(&d.UnitPrice)
		if err == sql.ErrNoRows {
			return apperr.Validation("drink not found by id:%s", *d.DrinkID)
		}
	}
	if err != nil {
		return apperr.Internal(err)
	}

	d.ID = uuid.New()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_details (id, order_id, dish_id, drink_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		d.ID, d.OrderID, d.DishID, d.DrinkID, d.Quantity, d.UnitPrice)
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// recomputeTotals rewrites the two derived order fields from the current
// lines: cooking time is the fixed overhead plus quantity-weighted cooking
// times of referenced dishes and drinks; the amount sums the price snapshots.
func recomputeTotals(ctx context.Context, q stock.Querier, orderID uuid.UUID) (float64, int, error) {
	var totalAmount float64
	var timeMinutes int
	err := q.QueryRowContext(ctx, `
		UPDATE orders SET
			order_time_minutes = $2 + COALESCE((
				SELECT SUM(od.quantity * d.cooking_time_in_minutes)
				FROM order_details od JOIN dishes d ON d.id = od.dish_id
				WHERE od.order_id = orders.id), 0) + COALESCE((
				SELECT SUM(od.quantity * dr.cooking_time_in_minutes)
				FROM order_details od JOIN drinks dr ON dr.id = od.drink_id
				WHERE od.order_id = orders.id), 0),
			total_amount = COALESCE((
				SELECT SUM(od.quantity * od.unit_price)
				FROM order_details od
				WHERE od.order_id = orders.id), 0),
			updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount, order_time_minutes`,
		orderID, fixedOverheadMinutes,
	).Scan(&totalAmount, &timeMinutes)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, apperr.Internal(err)
	}
	return totalAmount, timeMinutes, nil
}

func (r *repository) RecomputeTotals(ctx context.Context, orderID uuid.UUID) (float64, int, error) {
	return recomputeTotals(ctx, r.db, orderID)
}

const orderColumns = `id, order_info, user_id, status, total_amount, order_time_minutes, date_of_preparing_order, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderInfo, &o.UserID, &o.Status, &o.TotalAmount,
		&o.OrderTimeInMinutes, &o.DateOfPreparingOrder, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	if err != nil {
		return o, err
	}

	o.Details, err = r.GetDetails(ctx, id)
	return o, err
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += ` AND user_id = $1`
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		if len(args) == 1 {
			query += ` AND status = $1`
		} else {
			query += ` AND status = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r *repository) GetDetails(ctx context.Context, orderID uuid.UUID) ([]Detail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, dish_id, drink_id, quantity, unit_price, created_at, updated_at
		FROM order_details WHERE order_id = $1 ORDER BY created_at`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.DishID, &d.DrinkID,
			&d.Quantity, &d.UnitPrice, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
