package stock

import (
	"context"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/ingredient"
	"github.com/ParsifalKing/Menu-project/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger deducts ingredient stock for order lines.
type Ledger interface {
	DecrementForDish(ctx context.Context, q Querier, dishID uuid.UUID, lineQty int) error
	DecrementForDrink(ctx context.Context, q Querier, drinkID uuid.UUID, lineQty int) error
}

type ledger struct{}

func NewLedger() Ledger {
	return &ledger{}
}

type recipeLink struct {
	IngredientID   uuid.UUID
	IngredientName string
	PerUnit        float64
}

func (l *ledger) DecrementForDish(ctx context.Context, q Querier, dishID uuid.UUID, lineQty int) error {
	links, err := resolveLinks(ctx, q, `
		SELECT di.ingredient_id, i.name, di.quantity
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.dish_id = $1`, dishID)
	if err != nil {
		return apperr.Internal(err)
	}
	return l.decrement(ctx, q, links, lineQty)
}

func (l *ledger) DecrementForDrink(ctx context.Context, q Querier, drinkID uuid.UUID, lineQty int) error {
	links, err := resolveLinks(ctx, q, `
		SELECT di.ingredient_id, i.name, di.quantity
		FROM drink_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.drink_id = $1`, drinkID)
	if err != nil {
		return apperr.Internal(err)
	}
	return l.decrement(ctx, q, links, lineQty)
}

// decrement subtracts required = perUnit × lineQty from each linked ingredient
// with a conditional update, so a concurrent order can never drive the on-hand
// count negative. Zero affected rows means insufficient stock; the caller is
// expected to roll back the surrounding transaction.
func (l *ledger) decrement(ctx context.Context, q Querier, links []recipeLink, lineQty int) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "stock"))

	for _, link := range links {
		required := link.PerUnit * float64(lineQty)

		res, err := q.ExecContext(ctx, `
			UPDATE ingredients
			SET count = count - $1,
			    is_in_reserve = (count - $1) <= $2,
			    updated_at = NOW()
			WHERE id = $3 AND count >= $1`,
			required, float64(ingredient.LowStockThreshold), link.IngredientID)
		if err != nil {
			return apperr.Internal(err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return apperr.Internal(err)
		}
		if n == 0 {
			log.Warn("insufficient stock",
				zap.String("ingredient_id", link.IngredientID.String()),
				zap.Float64("required", required),
			)
			return apperr.Inventory("not enough of ingredient %q in stock", link.IngredientName)
		}
	}

	return nil
}

func resolveLinks(ctx context.Context, q Querier, query string, itemID uuid.UUID) ([]recipeLink, error) {
	rows, err := q.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []recipeLink
	for rows.Next() {
		var link recipeLink
		if err := rows.Scan(&link.IngredientID, &link.IngredientName, &link.PerUnit); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}
