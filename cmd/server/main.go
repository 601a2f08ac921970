package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ParsifalKing/Menu-project/internal/blockcontrol"
	"github.com/ParsifalKing/Menu-project/internal/category"
	"github.com/ParsifalKing/Menu-project/internal/config"
	"github.com/ParsifalKing/Menu-project/internal/db"
	"github.com/ParsifalKing/Menu-project/internal/dish"
	"github.com/ParsifalKing/Menu-project/internal/drink"
	"github.com/ParsifalKing/Menu-project/internal/httpapi"
	"github.com/ParsifalKing/Menu-project/internal/ingredient"
	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/mail"
	"github.com/ParsifalKing/Menu-project/internal/notification"
	"github.com/ParsifalKing/Menu-project/internal/order"
	"github.com/ParsifalKing/Menu-project/internal/stock"
	"github.com/ParsifalKing/Menu-project/internal/telegram"
	"github.com/ParsifalKing/Menu-project/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ledger := stock.NewLedger()
	evaluator := stock.NewEvaluator()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	ingredientRepo := ingredient.NewRepository(database)
	ingredientSvc := ingredient.NewService(ingredientRepo)

	dishRepo := dish.NewRepository(database)
	dishSvc := dish.NewService(dishRepo, database, evaluator)

	drinkRepo := drink.NewRepository(database)
	drinkSvc := drink.NewService(drinkRepo, database, evaluator)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	gateRepo := blockcontrol.NewRepository(database)
	gateSvc := blockcontrol.NewService(gateRepo)

	mailer := mail.NewSMTPMailer(cfg)
	adminChat := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
	notificationRepo := notification.NewRepository(database)
	notificationSvc := notification.NewService(notificationRepo, userRepo, mailer, adminChat, cfg.AdminMailbox)

	orderRepo := order.NewRepository(database, ledger, evaluator)
	orderSvc := order.NewService(orderRepo, userRepo, gateSvc, notificationSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The order admission switch must exist before any checkout runs.
	if err := gateRepo.EnsureExists(ctx); err != nil {
		logger.L().Fatal("failed to ensure block order control row", zap.Error(err))
	}

	server := httpapi.NewServer(
		userSvc,
		ingredientSvc,
		dishSvc,
		drinkSvc,
		categorySvc,
		orderSvc,
		notificationSvc,
		gateSvc,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: server.Engine(),
	}

	go func() {
		logger.L().Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}
