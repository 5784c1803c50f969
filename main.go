package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/finman-2025/finman-backend/internal/config"
	"github.com/finman-2025/finman-backend/internal/database"
	"github.com/finman-2025/finman-backend/internal/handler"
	"github.com/finman-2025/finman-backend/internal/keepalive"
	"github.com/finman-2025/finman-backend/internal/logger"
	"github.com/finman-2025/finman-backend/internal/ocr"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/router"
	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/storage"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := logger.Setup(cfg.Log); err != nil {
		logrus.WithError(err).Fatal("failed to set up logging")
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database")
	}
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	store, err := storage.NewLocal(cfg.Storage.Dir, cfg.Storage.BaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open object storage")
	}

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	expenses := repository.NewExpenseRepository(db)
	tips := repository.NewTipRepository(db)
	files := repository.NewExportedFileRepository(db)

	analyticsSvc := service.NewAnalyticsService(expenses, categories)
	expenseSvc := service.NewExpenseService(expenses, categories, analyticsSvc)
	categorySvc := service.NewCategoryService(categories, expenses, store)
	userSvc := service.NewUserService(users, store)
	authSvc := service.NewAuthService(users, cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessExpireMins)*time.Minute,
		time.Duration(cfg.JWT.RefreshExpireHours)*time.Hour)
	tipSvc := service.NewTipService(tips)
	exportSvc := service.NewExportService(files, expenseSvc, store, cfg.Storage.TmpDir)
	receiptSvc := service.NewReceiptService(
		ocr.NewClient(cfg.OCR.Endpoint, time.Duration(cfg.OCR.TimeoutSeconds)*time.Second))

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logrus.WithError(err).Warn("redis unreachable, rate limiting disabled")
			rdb = nil
		}
	}

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		User:      handler.NewUserHandler(userSvc, &cfg.Storage),
		Category:  handler.NewCategoryHandler(categorySvc, &cfg.Storage),
		Expense:   handler.NewExpenseHandler(expenseSvc),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc),
		Tip:       handler.NewTipHandler(tipSvc),
		Export:    handler.NewExportHandler(exportSvc),
		Receipt:   handler.NewReceiptHandler(receiptSvc, &cfg.Storage),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go keepalive.Run(ctx, cfg.Keepalive.URL, time.Duration(cfg.Keepalive.IntervalMins)*time.Minute)

	r := router.Setup(cfg, users, rdb, handlers)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logrus.WithField("addr", addr).Info("server starting")
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
