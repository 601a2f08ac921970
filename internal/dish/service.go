package dish

import (
	"context"
	"database/sql"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/stock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context) ([]Dish, error)
	GetByID(ctx context.Context, id uuid.UUID) (Dish, error)
	Create(ctx context.Context, in CreateInput) (Dish, error)
	Update(ctx context.Context, in UpdateInput) (Dish, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error)
	RemoveIngredient(ctx context.Context, dishID, ingredientID uuid.UUID) error
}

type service struct {
	repo      Repository
	db        *sql.DB
	evaluator stock.Evaluator
}

func NewService(repo Repository, db *sql.DB, evaluator stock.Evaluator) Service {
	return &service{repo: repo, db: db, evaluator: evaluator}
}

// GetAll refreshes stale availability flags before listing. A failed refresh
// only logs; browsing must keep working when the recompute cannot run.
func (s *service) GetAll(ctx context.Context) ([]Dish, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "GetDishes"))

	if err := s.evaluator.RefreshAllDishes(ctx, s.db); err != nil {
		log.Warn("availability refresh failed", zap.Error(err))
	}

	dishes, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to list dishes", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	return dishes, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Dish, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "GetDishByID"))

	if _, err := s.evaluator.RefreshDish(ctx, s.db, id); err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		log.Warn("availability refresh failed", zap.String("dish_id", id.String()), zap.Error(err))
	}

	d, err := s.repo.GetByID(ctx, id)
	if err == ErrNotFound {
		return d, apperr.NotFound("dish not found by id:%s", id)
	}
	if err != nil {
		return d, apperr.Internal(err)
	}
	return d, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (Dish, error) {
	if in.Name == "" {
		return Dish{}, apperr.Validation("dish name is required")
	}
	if in.Price < 0 {
		return Dish{}, apperr.Validation("dish price cannot be negative")
	}
	if in.CookingTimeInMinutes < 0 {
		return Dish{}, apperr.Validation("cooking time cannot be negative")
	}

	d, err := s.repo.Create(ctx, in)
	if err != nil {
		return d, apperr.Internal(err)
	}
	return d, nil
}

func (s *service) Update(ctx context.Context, in UpdateInput) (Dish, error) {
	d, err := s.repo.Update(ctx, in)
	if err == ErrNotFound {
		return d, apperr.NotFound("dish not found by id:%s", in.ID)
	}
	if err != nil {
		return d, apperr.Internal(err)
	}
	return d, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err == ErrNotFound {
		return apperr.NotFound("dish not found by id:%s", id)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// AddIngredient links an ingredient to the dish and refreshes the availability
// flag right away, since the new link may pull the dish below the threshold.
func (s *service) AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error) {
	if in.Quantity <= 0 {
		return RecipeLink{}, apperr.Validation("ingredient quantity per unit must be greater than zero")
	}

	link, err := s.repo.AddIngredient(ctx, in)
	if err == ErrDuplicateLink {
		return link, apperr.Validation("ingredient is already linked to this dish")
	}
	if err != nil {
		return link, apperr.Internal(err)
	}

	if _, err := s.evaluator.RefreshDish(ctx, s.db, in.DishID); err != nil {
		logger.FromCtx(ctx).Warn("availability refresh failed after link change",
			zap.String("dish_id", in.DishID.String()), zap.Error(err))
	}

	return link, nil
}

func (s *service) RemoveIngredient(ctx context.Context, dishID, ingredientID uuid.UUID) error {
	err := s.repo.RemoveIngredient(ctx, dishID, ingredientID)
	if err == ErrLinkNotFound {
		return apperr.NotFound("dish %s has no link to ingredient %s", dishID, ingredientID)
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if _, err := s.evaluator.RefreshDish(ctx, s.db, dishID); err != nil {
		logger.FromCtx(ctx).Warn("availability refresh failed after link change",
			zap.String("dish_id", dishID.String()), zap.Error(err))
	}

	return nil
}
