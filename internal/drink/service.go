package drink

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
	GetAll(ctx context.Context) ([]Drink, error)
	GetByID(ctx context.Context, id uuid.UUID) (Drink, error)
	Create(ctx context.Context, in CreateInput) (Drink, error)
	Update(ctx context.Context, in UpdateInput) (Drink, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error)
	RemoveIngredient(ctx context.Context, drinkID, ingredientID uuid.UUID) error
}

type service struct {
	repo      Repository
	db        *sql.DB
	evaluator stock.Evaluator
}

func NewService(repo Repository, db *sql.DB, evaluator stock.Evaluator) Service {
	return &service{repo: repo, db: db, evaluator: evaluator}
}

// Reads refresh stale availability flags first; a failed refresh only logs.
func (s *service) GetAll(ctx context.Context) ([]Drink, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "GetDrinks"))

	if err := s.evaluator.RefreshAllDrinks(ctx, s.db); err != nil {
		log.Warn("availability refresh failed", zap.Error(err))
	}

	drinks, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to list drinks", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	return drinks, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Drink, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "GetDrinkByID"))

	if _, err := s.evaluator.RefreshDrink(ctx, s.db, id); err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		log.Warn("availability refresh failed", zap.String("drink_id", id.String()), zap.Error(err))
	}

	d, err := s.repo.GetByID(ctx, id)
	if err == ErrNotFound {
		return d, apperr.NotFound("drink not found by id:%s", id)
	}
	if err != nil {
		return d, apperr.Internal(err)
	}
	return d, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (Drink, error) {
	if in.Name == "" {
		return Drink{}, apperr.Validation("drink name is required")
	}
	if in.Price < 0 {
		return Drink{}, apperr.Validation("drink price cannot be negative")
	}
	if in.CookingTimeInMinutes < 0 {
		return Drink{}, apperr.Validation("cooking time cannot be negative")
	}

	d, err := s.repo.Create(ctx, in)
	if err != nil {
		return d, apperr.Internal(err)
	}
	return d, nil
}

func (s *service) Update(ctx context.Context, in UpdateInput) (Drink, error) {
	d, err := s.repo.Update(ctx, in)
	if err == ErrNotFound {
		return d, apperr.NotFound("drink not found by id:%s", in.ID)
	}
	if err != nil {
		return d, apperr.Internal(err)
	}
	return d, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err == ErrNotFound {
		return apperr.NotFound("drink not found by id:%s", id)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *service) AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error) {
	if in.Quantity <= 0 {
		return RecipeLink{}, apperr.Validation("ingredient quantity per unit must be greater than zero")
	}

	link, err := s.repo.AddIngredient(ctx, in)
	if err == ErrDuplicateLink {
		return link, apperr.Validation("ingredient is already linked to this drink")
	}
	if err != nil {
		return link, apperr.Internal(err)
	}

	if _, err := s.evaluator.RefreshDrink(ctx, s.db, in.DrinkID); err != nil {
		logger.FromCtx(ctx).Warn("availability refresh failed after link change",
			zap.String("drink_id", in.DrinkID.String()), zap.Error(err))
	}

	return link, nil
}

func (s *service) RemoveIngredient(ctx context.Context, drinkID, ingredientID uuid.UUID) error {
	err := s.repo.RemoveIngredient(ctx, drinkID, ingredientID)
	if err == ErrLinkNotFound {
		return apperr.NotFound("drink %s has no link to ingredient %s", drinkID, ingredientID)
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if _, err := s.evaluator.RefreshDrink(ctx, s.db, drinkID); err != nil {
		logger.FromCtx(ctx).Warn("availability refresh failed after link change",
			zap.String("drink_id", drinkID.String()), zap.Error(err))
	}

	return nil
}
