package dish

import (
	"context"
	"errors"
	"testing"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/stock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Dish, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Dish), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (Dish, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Dish), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, in CreateInput) (Dish, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(Dish), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, in UpdateInput) (Dish, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(Dish), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(RecipeLink), args.Error(1)
}

func (m *MockRepository) RemoveIngredient(ctx context.Context, dishID, ingredientID uuid.UUID) error {
	args := m.Called(ctx, dishID, ingredientID)
	return args.Error(0)
}

func (m *MockRepository) GetIngredients(ctx context.Context, dishID uuid.UUID) ([]RecipeLink, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RecipeLink), args.Error(1)
}

type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) RefreshDish(ctx context.Context, q stock.Querier, dishID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, dishID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEvaluator) RefreshDrink(ctx context.Context, q stock.Querier, drinkID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, drinkID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEvaluator) RefreshAllDishes(ctx context.Context, q stock.Querier) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockEvaluator) RefreshAllDrinks(ctx context.Context, q stock.Querier) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func TestService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("RefreshesFlagsBeforeListing", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		evaluator.On("RefreshAllDishes", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetAll", ctx).Return([]Dish{{Name: "plov"}}, nil).Once()

		dishes, err := svc.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, dishes, 1)
		evaluator.AssertExpectations(t)
	})

	t.Run("ListingSurvivesFailedRefresh", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		evaluator.On("RefreshAllDishes", ctx, mock.Anything).Return(errors.New("db error")).Once()
		repo.On("GetAll", ctx).Return([]Dish{{Name: "plov"}}, nil).Once()

		dishes, err := svc.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, dishes, 1)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	dishID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		evaluator.On("RefreshDish", ctx, mock.Anything, dishID).Return(true, nil).Once()
		repo.On("GetByID", ctx, dishID).Return(Dish{ID: dishID, AreAllIngredients: true}, nil).Once()

		d, err := svc.GetByID(ctx, dishID)
		assert.NoError(t, err)
		assert.True(t, d.AreAllIngredients)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		evaluator.On("RefreshDish", ctx, mock.Anything, dishID).
			Return(false, apperr.NotFound("dish not found by id:%s", dishID)).Once()
		repo.On("GetByID", ctx, dishID).Return(Dish{}, ErrNotFound).Once()

		_, err := svc.GetByID(ctx, dishID)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestService_AddIngredient(t *testing.T) {
	ctx := context.Background()
	dishID := uuid.New()
	ingredientID := uuid.New()

	in := LinkInput{DishID: dishID, IngredientID: ingredientID, Quantity: 0.5}

	t.Run("SuccessRefreshesFlag", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		repo.On("AddIngredient", ctx, in).Return(RecipeLink{DishID: dishID}, nil).Once()
		evaluator.On("RefreshDish", ctx, mock.Anything, dishID).Return(false, nil).Once()

		link, err := svc.AddIngredient(ctx, in)
		assert.NoError(t, err)
		assert.Equal(t, dishID, link.DishID)
		evaluator.AssertExpectations(t)
	})

	t.Run("DuplicateLink", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		repo.On("AddIngredient", ctx, in).Return(RecipeLink{}, ErrDuplicateLink).Once()

		_, err := svc.AddIngredient(ctx, in)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		evaluator.AssertNotCalled(t, "RefreshDish")
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, new(MockEvaluator))

		_, err := svc.AddIngredient(ctx, LinkInput{DishID: dishID, IngredientID: ingredientID, Quantity: 0})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "AddIngredient")
	})
}

func TestService_RemoveIngredient(t *testing.T) {
	ctx := context.Background()
	dishID := uuid.New()
	ingredientID := uuid.New()

	t.Run("SuccessRefreshesFlag", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		repo.On("RemoveIngredient", ctx, dishID, ingredientID).Return(nil).Once()
		evaluator.On("RefreshDish", ctx, mock.Anything, dishID).Return(true, nil).Once()

		err := svc.RemoveIngredient(ctx, dishID, ingredientID)
		assert.NoError(t, err)
		evaluator.AssertExpectations(t)
	})

	t.Run("LinkNotFound", func(t *testing.T) {
		repo := new(MockRepository)
		evaluator := new(MockEvaluator)
		svc := NewService(repo, nil, evaluator)

		repo.On("RemoveIngredient", ctx, dishID, ingredientID).Return(ErrLinkNotFound).Once()

		err := svc.RemoveIngredient(ctx, dishID, ingredientID)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
