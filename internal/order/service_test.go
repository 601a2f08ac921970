package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/blockcontrol"
	"github.com/ParsifalKing/Menu-project/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) GetDetails(ctx context.Context, orderID uuid.UUID) ([]Detail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Detail), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) RecomputeTotals(ctx context.Context, orderID uuid.UUID) (float64, int, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(float64), args.Get(1).(int), args.Error(2)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

type MockGate struct {
	mock.Mock
}

func (m *MockGate) Get(ctx context.Context) (blockcontrol.BlockOrderControl, error) {
	args := m.Called(ctx)
	return args.Get(0).(blockcontrol.BlockOrderControl), args.Error(1)
}

func (m *MockGate) IsBlocked(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGate) SetBlocked(ctx context.Context, blocked bool) (blockcontrol.BlockOrderControl, error) {
	args := m.Called(ctx, blocked)
	return args.Get(0).(blockcontrol.BlockOrderControl), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrderCreated(ctx context.Context, o Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotifier) OrderUpdated(ctx context.Context, o Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func newTestService(repo *MockRepository, users *MockUserRepository, gate *MockGate, notifier *MockNotifier, now time.Time) *service {
	return &service{
		repo:     repo,
		users:    users,
		gate:     gate,
		notifier: notifier,
		now:      func() time.Time { return now },
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	dishID := uuid.New()
	drinkID := uuid.New()

	validInput := func() CreateInput {
		return CreateInput{
			OrderInfo:            "no onions",
			UserID:               userID,
			DateOfPreparingOrder: now.Add(48 * time.Hour),
			Lines:                []LineInput{{DishID: &dishID, Quantity: 2}},
		}
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()
		repo.On("CreateOrderTx", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.UserID == userID && o.Status == StatusNotConfirmed && len(o.Details) == 1
		})).Return(nil).Once()
		notifier.On("OrderCreated", ctx, mock.Anything).Return(nil).Once()

		o, err := svc.Create(ctx, validInput())

		assert.NoError(t, err)
		assert.Equal(t, StatusNotConfirmed, o.Status)
		repo.AssertExpectations(t)
		gate.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("BlockedGateWritesNothing", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(true, nil).Once()

		_, err := svc.Create(ctx, validInput())

		assert.Error(t, err)
		assert.Equal(t, apperr.KindAdmission, apperr.KindOf(err))
		repo.AssertNotCalled(t, "CreateOrderTx")
		notifier.AssertNotCalled(t, "OrderCreated")
	})

	t.Run("UnknownUser", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{}, user.ErrNotFound).Once()

		_, err := svc.Create(ctx, validInput())

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("EmptyLines", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()

		in := validInput()
		in.Lines = nil

		_, err := svc.Create(ctx, in)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("LineWithDishAndDrink", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()

		in := validInput()
		in.Lines = []LineInput{{DishID: &dishID, DrinkID: &drinkID, Quantity: 1}}

		_, err := svc.Create(ctx, in)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("LineWithNeitherDishNorDrink", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()

		in := validInput()
		in.Lines = []LineInput{{Quantity: 1}}

		_, err := svc.Create(ctx, in)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()

		in := validInput()
		in.Lines = []LineInput{{DishID: &dishID, Quantity: 0}}

		_, err := svc.Create(ctx, in)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("PreparationDateInPast", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()

		in := validInput()
		in.DateOfPreparingOrder = now.Add(-24 * time.Hour)

		_, err := svc.Create(ctx, in)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("PreparationDateTooFarAhead", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()

		in := validInput()
		in.DateOfPreparingOrder = now.AddDate(0, 0, 20)

		_, err := svc.Create(ctx, in)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("NotificationFailureDoesNotFailOrder", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()
		repo.On("CreateOrderTx", ctx, mock.Anything).Return(nil).Once()
		notifier.On("OrderCreated", ctx, mock.Anything).Return(errors.New("smtp down")).Once()

		_, err := svc.Create(ctx, validInput())
		assert.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("InsufficientStockAbortsCheckout", func(t *testing.T) {
		repo := new(MockRepository)
		users := new(MockUserRepository)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		svc := newTestService(repo, users, gate, notifier, now)

		gate.On("IsBlocked", ctx).Return(false, nil).Once()
		users.On("FindByID", ctx, userID).Return(user.User{ID: userID}, nil).Once()
		repo.On("CreateOrderTx", ctx, mock.Anything).
			Return(apperr.Inventory("not enough of ingredient %q in stock", "flour")).Once()

		_, err := svc.Create(ctx, validInput())
		assert.Error(t, err)
		assert.Equal(t, apperr.KindInventory, apperr.KindOf(err))
		notifier.AssertNotCalled(t, "OrderCreated")
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := new(MockNotifier)
		svc := newTestService(repo, new(MockUserRepository), new(MockGate), notifier, now)

		repo.On("GetByID", ctx, orderID).Return(Order{ID: orderID, Status: StatusNotConfirmed}, nil).Once()
		repo.On("UpdateStatus", ctx, orderID, StatusConfirmed).Return(nil).Once()
		repo.On("RecomputeTotals", ctx, orderID).Return(30.0, 25, nil).Once()
		notifier.On("OrderUpdated", ctx, mock.Anything).Return(nil).Once()

		o, err := svc.UpdateStatus(ctx, orderID, StatusConfirmed)

		assert.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		assert.Equal(t, 30.0, o.TotalAmount)
		assert.Equal(t, 25, o.OrderTimeInMinutes)
		repo.AssertExpectations(t)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockUserRepository), new(MockGate), new(MockNotifier), now)

		_, err := svc.UpdateStatus(ctx, orderID, Status("SHIPPED"))
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockUserRepository), new(MockGate), new(MockNotifier), now)

		repo.On("GetByID", ctx, orderID).Return(Order{ID: orderID, Status: StatusCompleted}, nil).Once()

		_, err := svc.UpdateStatus(ctx, orderID, StatusInProgress)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockUserRepository), new(MockGate), new(MockNotifier), now)

		repo.On("GetByID", ctx, orderID).Return(Order{}, ErrNotFound).Once()

		_, err := svc.UpdateStatus(ctx, orderID, StatusConfirmed)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusNotConfirmed.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusNotConfirmed.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusReady))
	assert.True(t, StatusReady.CanTransitionTo(StatusCompleted))

	assert.False(t, StatusCompleted.CanTransitionTo(StatusInProgress))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusReady.CanTransitionTo(StatusNotConfirmed))
}
