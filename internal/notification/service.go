package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/order"
	"github.com/ParsifalKing/Menu-project/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mailer delivers rendered order summaries. Transport, retries and batching
// are the collaborator's concern.
type Mailer interface {
	SendEmail(ctx context.Context, recipients []string, subject, htmlBody string) error
}

// AdminChat posts a plain-text message to the admin channel.
type AdminChat interface {
	SendMessageToAdmin(ctx context.Context, text string) error
}

type Service interface {
	order.Notifier
	GetAll(ctx context.Context) ([]Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (Notification, error)
}

type service struct {
	repo         Repository
	users        user.Repository
	mailer       Mailer
	chat         AdminChat
	adminMailbox string
}

func NewService(repo Repository, users user.Repository, mailer Mailer, chat AdminChat, adminMailbox string) Service {
	return &service{
		repo:         repo,
		users:        users,
		mailer:       mailer,
		chat:         chat,
		adminMailbox: adminMailbox,
	}
}

// OrderCreated records the notification and fans it out: email to the
// customer and the admin mailbox, chat message to the admin channel. All
// three deliveries are attempted even when one fails.
func (s *service) OrderCreated(ctx context.Context, o order.Order) error {
	return s.dispatch(ctx, o, true)
}

func (s *service) OrderUpdated(ctx context.Context, o order.Order) error {
	return s.dispatch(ctx, o, false)
}

func (s *service) dispatch(ctx context.Context, o order.Order, created bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DispatchOrderNotification"),
		zap.String("order_id", o.ID.String()),
	)

	u, err := s.users.FindByID(ctx, o.UserID)
	if err != nil {
		return fmt.Errorf("load order user: %w", err)
	}

	if _, err := s.repo.Create(ctx, o.ID, o.UserID); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	var errs []error

	subject := "All information about order"
	if err := s.mailer.SendEmail(ctx, []string{s.adminMailbox}, subject,
		"<h1>"+adminSummary(o, u)+"</h1>"); err != nil {
		log.Error("admin email failed", zap.Error(err))
		errs = append(errs, err)
	}
	if err := s.mailer.SendEmail(ctx, []string{u.Email}, subject,
		"<h1>"+userSummary(o, u)+"</h1>"); err != nil {
		log.Error("customer email failed", zap.String("email", u.Email), zap.Error(err))
		errs = append(errs, err)
	}
	if err := s.chat.SendMessageToAdmin(ctx, chatSummary(o, u)); err != nil {
		log.Error("admin chat message failed", zap.Error(err))
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	verb := "updated"
	if created {
		verb = "created"
	}
	log.Info("order notification sent", zap.String("event", verb))
	return nil
}

func adminSummary(o order.Order, u user.User) string {
	return fmt.Sprintf("Order Id : %s <br> %s", o.ID, userSummary(o, u))
}

func userSummary(o order.Order, u user.User) string {
	return fmt.Sprintf(
		"Order info : %s <br> Total amount of order : %.2f <br> Status of order : %s <br> Order completion time in minutes : %d <br> Username of user who ordered : %s <br> The phonenumber of user : %s",
		o.OrderInfo, o.TotalAmount, o.Status, o.OrderTimeInMinutes, u.Username, u.Phone)
}

func chatSummary(o order.Order, u user.User) string {
	return fmt.Sprintf(
		"Username of user who ordered : %s \nThe phonenumber of user : %s \nOrder info : %s \nTotal amount of order : %.2f \nStatus of order : %s \nOrder completion time in minutes : %d",
		u.Username, u.Phone, o.OrderInfo, o.TotalAmount, o.Status, o.OrderTimeInMinutes)
}

func (s *service) GetAll(ctx context.Context) ([]Notification, error) {
	notifications, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return notifications, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err == ErrNotFound {
		return n, apperr.NotFound("notification not found by id:%s", id)
	}
	if err != nil {
		return n, apperr.Internal(err)
	}
	return n, nil
}
