package order

import (
	"context"
	"time"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/blockcontrol"
	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is the downstream alert collaborator. Dispatch failures never fail
// an otherwise successful order; they are logged by the orchestrator.
type Notifier interface {
	OrderCreated(ctx context.Context, o Order) error
	OrderUpdated(ctx context.Context, o Order) error
}

// checkout phases, for log correlation of the creation pipeline.
const (
	phaseValidating   = "validating"
	phasePricing      = "pricing"
	phasePersisting   = "persisting"
	phaseDecrementing = "decrementing_stock"
	phaseNotifying    = "notifying"
	phaseDone         = "done"
)

type Service interface {
	Create(ctx context.Context, in CreateInput) (Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	List(ctx context.Context, filter Filter) ([]Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	users    user.Repository
	gate     blockcontrol.Service
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, users user.Repository, gate blockcontrol.Service, notifier Notifier) Service {
	return &service{
		repo:     repo,
		users:    users,
		gate:     gate,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create runs the whole checkout: admission gate, structural validation,
// pricing and persistence, stock deduction and the post-commit notification.
// Nothing is written until validation passes, and the persistence plus stock
// phase is a single transaction.
func (s *service) Create(ctx context.Context, in CreateInput) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", in.UserID.String()),
	)

	// Validating: no writes may happen past a failure here.
	log.Debug("checkout phase", zap.String("phase", phaseValidating))
	if err := s.validate(ctx, in); err != nil {
		log.Warn("checkout aborted", zap.String("phase", phaseValidating), zap.Error(err))
		return Order{}, err
	}

	o := Order{
		ID:                   uuid.New(),
		OrderInfo:            in.OrderInfo,
		UserID:               in.UserID,
		Status:               StatusNotConfirmed,
		DateOfPreparingOrder: in.DateOfPreparingOrder,
	}
	for _, line := range in.Lines {
		o.Details = append(o.Details, Detail{
			OrderID:  o.ID,
			DishID:   line.DishID,
			DrinkID:  line.DrinkID,
			Quantity: line.Quantity,
		})
	}

	// Pricing, persisting and stock deduction share one transaction.
	log.Debug("checkout phase", zap.String("phase", phasePricing))
	log.Debug("checkout phase", zap.String("phase", phasePersisting))
	log.Debug("checkout phase", zap.String("phase", phaseDecrementing))
	if err := s.repo.CreateOrderTx(ctx, &o); err != nil {
		log.Warn("checkout aborted", zap.String("phase", phaseDecrementing), zap.Error(err))
		return Order{}, err
	}

	// Notifying: the order is already placed, so a dispatch failure is
	// logged and swallowed.
	log.Debug("checkout phase", zap.String("phase", phaseNotifying))
	if err := s.notifier.OrderCreated(ctx, o); err != nil {
		log.Error("order notification failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}

	log.Info("checkout finished",
		zap.String("phase", phaseDone),
		zap.String("order_id", o.ID.String()),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Int("order_time_minutes", o.OrderTimeInMinutes),
	)
	return o, nil
}

func (s *service) validate(ctx context.Context, in CreateInput) error {
	blocked, err := s.gate.IsBlocked(ctx)
	if err != nil {
		return err
	}
	if blocked {
		return apperr.Admission("ordering is currently blocked")
	}

	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		if err == user.ErrNotFound {
			return apperr.Validation("not found user with id:%s", in.UserID)
		}
		return apperr.Internal(err)
	}

	if len(in.Lines) == 0 {
		return apperr.Validation("order must have at least one line")
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return apperr.Validation("order line quantity must be greater than zero")
		}
		if line.DishID != nil && line.DrinkID != nil {
			return apperr.Validation("an order line cannot reference both a dish and a drink")
		}
		if line.DishID == nil && line.DrinkID == nil {
			return apperr.Validation("an order line must reference a dish or a drink")
		}
	}

	now := s.now()
	if in.DateOfPreparingOrder.Before(now) || in.DateOfPreparingOrder.After(now.AddDate(0, 0, preparationWindowDays)) {
		return apperr.Validation("date of preparing order must be between now and %d days from now", preparationWindowDays)
	}

	return nil
}

// UpdateStatus moves an order through its lifecycle, re-runs the aggregate
// recompute and re-notifies. Stock is never deducted again here.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id.String()),
	)

	if !status.Valid() {
		return Order{}, apperr.Validation("invalid order status: %s", status)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err == ErrNotFound {
		return Order{}, apperr.NotFound("order not found by id:%s", id)
	}
	if err != nil {
		return Order{}, apperr.Internal(err)
	}

	if !existing.Status.CanTransitionTo(status) {
		return Order{}, apperr.Validation("cannot change order status from %s to %s", existing.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Order{}, apperr.Internal(err)
	}
	existing.Status = status

	existing.TotalAmount, existing.OrderTimeInMinutes, err = s.repo.RecomputeTotals(ctx, id)
	if err != nil {
		return Order{}, err
	}

	if err := s.notifier.OrderUpdated(ctx, existing); err != nil {
		log.Error("order notification failed", zap.Error(err))
	}

	log.Info("order status updated", zap.String("status", string(status)))
	return existing, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err == ErrNotFound {
		return o, apperr.NotFound("order not found by id:%s", id)
	}
	if err != nil {
		return o, apperr.Internal(err)
	}
	return o, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]Order, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err == ErrNotFound {
		return apperr.NotFound("order not found by id:%s", id)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
