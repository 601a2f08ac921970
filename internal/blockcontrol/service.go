package blockcontrol

import (
	"context"

	"github.com/ParsifalKing/Menu-project/internal/apperr"
	"github.com/ParsifalKing/Menu-project/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context) (BlockOrderControl, error)
	// IsBlocked reports whether new orders are admitted. A missing control
	// row is an internal error, never treated as "not blocked".
	IsBlocked(ctx context.Context) (bool, error)
	SetBlocked(ctx context.Context, blocked bool) (BlockOrderControl, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context) (BlockOrderControl, error) {
	b, err := s.repo.Get(ctx)
	if err != nil {
		return b, apperr.Internal(err)
	}
	return b, nil
}

func (s *service) IsBlocked(ctx context.Context) (bool, error) {
	b, err := s.repo.Get(ctx)
	if err == ErrMissing {
		logger.FromCtx(ctx).Error("block order control row is missing")
		return false, apperr.Internal(err)
	}
	if err != nil {
		return false, apperr.Internal(err)
	}
	return b.IsBlocked, nil
}

func (s *service) SetBlocked(ctx context.Context, blocked bool) (BlockOrderControl, error) {
	b, err := s.repo.SetBlocked(ctx, blocked)
	if err != nil {
		return b, apperr.Internal(err)
	}

	logger.FromCtx(ctx).Info("order admission switch updated", zap.Bool("is_blocked", b.IsBlocked))
	return b, nil
}
