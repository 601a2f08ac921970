package ingredient

import (
	"context"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context) ([]Ingredient, error)
	GetByID(ctx context.Context, id uuid.UUID) (Ingredient, error)
	Create(ctx context.Context, in CreateInput) (Ingredient, error)
	Update(ctx context.Context, in UpdateInput) (Ingredient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]Ingredient, error) {
	ingredients, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ingredients, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Ingredient, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err == ErrNotFound {
		return i, apperr.NotFound("ingredient not found by id:%s", id)
	}
	if err != nil {
		return i, apperr.Internal(err)
	}
	return i, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (Ingredient, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateIngredient"),
	)

	if in.Name == "" {
		return Ingredient{}, apperr.Validation("ingredient name is required")
	}
	if in.Count < 0 {
		return Ingredient{}, apperr.Validation("ingredient count cannot be negative")
	}

	i, err := s.repo.Create(ctx, in)
	if err != nil {
		log.Error("failed to create ingredient", zap.Error(err))
		return i, apperr.Internal(err)
	}

	log.Info("ingredient created",
		zap.String("ingredient_id", i.ID.String()),
		zap.Float64("count", i.Count),
		zap.Bool("is_in_reserve", i.IsInReserve),
	)
	return i, nil
}

func (s *service) Update(ctx context.Context, in UpdateInput) (Ingredient, error) {
	if in.Count < 0 {
		return Ingredient{}, apperr.Validation("ingredient count cannot be negative")
	}

	i, err := s.repo.Update(ctx, in)
	if err == ErrNotFound {
		return i, apperr.NotFound("ingredient not found by id:%s", in.ID)
	}
	if err != nil {
		return i, apperr.Internal(err)
	}
	return i, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err == ErrNotFound {
		return apperr.NotFound("ingredient not found by id:%s", id)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
