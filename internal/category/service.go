package category

import (
	"context"

	"github.com/ParsifalKing/Menu-project/internal/apperr"

	"github.com/google/uuid"
)

type Service interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	Create(ctx context.Context, name, description string) (Category, error)
	Update(ctx context.Context, c Category) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error
	UnlinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err == ErrNotFound {
		return c, apperr.NotFound("category not found by id:%s", id)
	}
	if err != nil {
		return c, apperr.Internal(err)
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, name, description string) (Category, error) {
	if name == "" {
		return Category{}, apperr.Validation("category name is required")
	}
	c, err := s.repo.Create(ctx, name, description)
	if err != nil {
		return c, apperr.Internal(err)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, c Category) (Category, error) {
	updated, err := s.repo.Update(ctx, c)
	if err == ErrNotFound {
		return updated, apperr.NotFound("category not found by id:%s", c.ID)
	}
	if err != nil {
		return updated, apperr.Internal(err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err == ErrNotFound {
		return apperr.NotFound("category not found by id:%s", id)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *service) LinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error {
	if err := s.repo.LinkDish(ctx, categoryID, dishID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *service) UnlinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error {
	if err := s.repo.UnlinkDish(ctx, categoryID, dishID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
