package stock

import (
	"context"
	"database/sql"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/ingredient"

	"github.com/google/uuid"
)

// Evaluator recomputes the "all ingredients available" flag on dishes and
// drinks. The recompute is idempotent: it is run right after any stock
// mutation and may also be called from read paths to heal a stale flag.
type Evaluator interface {
	RefreshDish(ctx context.Context, q Querier, dishID uuid.UUID) (bool, error)
	RefreshDrink(ctx context.Context, q Querier, drinkID uuid.UUID) (bool, error)
	RefreshAllDishes(ctx context.Context, q Querier) error
	RefreshAllDrinks(ctx context.Context, q Querier) error
}

type evaluator struct{}

func NewEvaluator() Evaluator {
	return &evaluator{}
}

// A dish is fully available only while none of its ingredients sit in the
// low-stock band. A dish without recipe links stays available.
func (e *evaluator) RefreshDish(ctx context.Context, q Querier, dishID uuid.UUID) (bool, error) {
	var available bool
	err := q.QueryRowContext(ctx, `
		UPDATE dishes
		SET are_all_ingredients = NOT EXISTS (
			SELECT 1
			FROM dish_ingredients di
			JOIN ingredients i ON i.id = di.ingredient_id
			WHERE di.dish_id = dishes.id AND i.count <= $2
		), updated_at = NOW()
		WHERE id = $1
		RETURNING are_all_ingredients`,
		dishID, float64(ingredient.LowStockThreshold),
	).Scan(&available)
	if err == sql.ErrNoRows {
		return false, apperr.NotFound("dish not found by id:%s", dishID)
	}
	if err != nil {
		return false, apperr.Internal(err)
	}

	return available, nil
}

// RefreshAllDishes heals stale flags in bulk, used by listing reads.
func (e *evaluator) RefreshAllDishes(ctx context.Context, q Querier) error {
	_, err := q.ExecContext(ctx, `
		UPDATE dishes
		SET are_all_ingredients = NOT EXISTS (
			SELECT 1
			FROM dish_ingredients di
			JOIN ingredients i ON i.id = di.ingredient_id
			WHERE di.dish_id = dishes.id AND i.count <= $1
		)
		WHERE are_all_ingredients <> NOT EXISTS (
			SELECT 1
			FROM dish_ingredients di
			JOIN ingredients i ON i.id = di.ingredient_id
			WHERE di.dish_id = dishes.id AND i.count <= $1
		)`,
		float64(ingredient.LowStockThreshold))
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (e *evaluator) RefreshAllDrinks(ctx context.Context, q Querier) error {
	_, err := q.ExecContext(ctx, `
		UPDATE drinks
		SET are_all_ingredients = NOT EXISTS (
			SELECT 1
			FROM drink_ingredients di
			JOIN ingredients i ON i.id = di.ingredient_id
			WHERE di.drink_id = drinks.id AND i.count <= $1
		)
		WHERE are_all_ingredients <> NOT EXISTS (
			SELECT 1
			FROM drink_ingredients di
			JOIN ingredients i ON i.id = di.ingredient_id
			WHERE di.drink_id = drinks.id AND i.count <= $1
		)`,
		float64(ingredient.LowStockThreshold))
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (e *evaluator) RefreshDrink(ctx context.Context, q Querier, drinkID uuid.UUID) (bool, error) {
	var available bool
	err := q.QueryRowContext(ctx, `
		UPDATE drinks
		SET are_all_ingredients = NOT EXISTS (
			SELECT 1
			FROM drink_ingredients di
			JOIN ingredients i ON i.id = di.ingredient_id
			WHERE di.drink_id = drinks.id AND i.count <= $2
		), updated_at = NOW()
		WHERE id = $1
		RETURNING are_all_ingredients`,
		drinkID, float64(ingredient.LowStockThreshold),
	).Scan(&available)
	if err == sql.ErrNoRows {
		return false, apperr.NotFound("drink not found by id:%s", drinkID)
	}
	if err != nil {
		return false, apperr.Internal(err)
	}

	return available, nil
}
