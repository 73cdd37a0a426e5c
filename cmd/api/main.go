package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/pocket/internal/budget/store"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	categoryStore "github.com/MrJamesThe3rd/pocket/internal/category/store"
	"github.com/MrJamesThe3rd/pocket/internal/config"
	"github.com/MrJamesThe3rd/pocket/internal/database"
	pocketHttp "github.com/MrJamesThe3rd/pocket/internal/http"
	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	budgetHandler "github.com/MrJamesThe3rd/pocket/internal/http/budget"
	importHandler "github.com/MrJamesThe3rd/pocket/internal/http/importcsv"
	investmentHandler "github.com/MrJamesThe3rd/pocket/internal/http/investment"
	matchingHandler "github.com/MrJamesThe3rd/pocket/internal/http/matching"
	reportHandler "github.com/MrJamesThe3rd/pocket/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/pocket/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/investment"
	investmentStore "github.com/MrJamesThe3rd/pocket/internal/investment/store"
	"github.com/MrJamesThe3rd/pocket/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/pocket/internal/matching/store"
	"github.com/MrJamesThe3rd/pocket/internal/notify"
	"github.com/MrJamesThe3rd/pocket/internal/report"
	reportStore "github.com/MrJamesThe3rd/pocket/internal/report/store"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pocket/internal/transaction/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("pocket stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.LogLevel})))

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	notifier, closeNotifier := newNotifier(cfg)
	defer closeNotifier()

	var (
		categoryService    = category.NewService(categoryStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db), categoryService)
		transactionService = transaction.NewService(txStore.New(db), categoryService)
		reportService      = report.NewService(reportStore.New(db), transactionService)
		matchingService    = matching.NewService(matchingStore.New(db))
		invStore           = investmentStore.New(db)
		scheduler          = investment.NewScheduler(invStore, transactionService, categoryService, notifier,
			investment.SchedulerConfig{
				PollInterval:     cfg.Scheduler.PollInterval,
				MisfireThreshold: cfg.Scheduler.MisfireThreshold,
				BatchSize:        cfg.Scheduler.BatchSize,
			})
		investmentService = investment.NewService(invStore, scheduler, categoryService, transactionService)
	)

	router := pocketHttp.New(pocketHttp.Handlers{
		Budgets:      budgetHandler.NewHandler(budgetService),
		Transactions: txHandler.NewHandler(transactionService),
		Investments:  investmentHandler.NewHandler(investmentService),
		Reports:      reportHandler.NewHandler(reportService),
		Import:       importHandler.NewHandler(importer.NewParser(), transactionService, matchingService),
		Rules:        matchingHandler.NewHandler(matchingService),
	}, cfg.Server.CORSOrigins, authenticator(cfg))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	})

	if cfg.Scheduler.Enabled {
		g.Go(func() error {
			return scheduler.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		slog.Info("shutting down server")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func authenticator(cfg *config.Config) func(http.Handler) http.Handler {
	if cfg.Auth.JWTSecret == "" {
		return api.RequireOwner
	}

	return api.RequireToken([]byte(cfg.Auth.JWTSecret))
}

func newNotifier(cfg *config.Config) (notify.Notifier, func()) {
	if cfg.AMQP.URL == "" {
		slog.Info("no AMQP broker configured, device notifications are only logged")
		return notify.LogNotifier{}, func() {}
	}

	pub, err := notify.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		slog.Error("failed to connect to AMQP broker, device notifications are only logged", "error", err)
		return notify.LogNotifier{}, func() {}
	}

	return pub, func() {
		if err := pub.Close(); err != nil {
			slog.Error("failed to close AMQP publisher", "error", err)
		}
	}
}
