package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/elamirizidani/Accounting-backend/internal/app"
	"github.com/elamirizidani/Accounting-backend/internal/companies"
	"github.com/elamirizidani/Accounting-backend/internal/customers"
	"github.com/elamirizidani/Accounting-backend/internal/invoices"
	"github.com/elamirizidani/Accounting-backend/internal/platform/cache"
	"github.com/elamirizidani/Accounting-backend/internal/platform/db"
	"github.com/elamirizidani/Accounting-backend/internal/quotations"
	"github.com/elamirizidani/Accounting-backend/internal/services"
	"github.com/elamirizidani/Accounting-backend/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, summary cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	companyRepo := companies.NewRepository(pool)
	customerRepo := customers.NewRepository(pool)
	catalogRepo := services.NewRepository(pool)
	quotationRepo := quotations.NewRepository(pool)
	invoiceRepo := invoices.NewRepository(pool)

	companyService := companies.NewService(companyRepo)
	customerService := customers.NewService(customerRepo)
	catalog := services.NewCatalog(catalogRepo)
	quotationService := quotations.NewService(quotationRepo, companyRepo, customerRepo)

	summaryCache := invoices.NewCache(redisClient, cfg.SummaryCacheTTL)
	invoiceService := invoices.NewService(invoiceRepo, quotationRepo, summaryCache, jobsClient, logger)
	customerReports := invoices.NewReports(invoiceRepo, customerRepo, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:                 logger,
		Config:                 cfg,
		CompaniesHandler:       companies.NewHandler(logger, companyService),
		CustomersHandler:       customers.NewHandler(logger, customerService),
		ServicesHandler:        services.NewHandler(logger, catalog),
		QuotationsHandler:      quotations.NewHandler(logger, quotationService),
		InvoicesHandler:        invoices.NewHandler(logger, invoiceService),
		CustomerReportsHandler: invoices.NewReportsHandler(logger, customerReports),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
