package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/app"
	"github.com/pulsegrid/console/internal/auth"
	"github.com/pulsegrid/console/internal/notifications"
	"github.com/pulsegrid/console/internal/observability"
	"github.com/pulsegrid/console/internal/overview"
	"github.com/pulsegrid/console/internal/platform/cache"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/subscriptions"
	"github.com/pulsegrid/console/internal/syslogs"
	"github.com/pulsegrid/console/internal/users"
	"github.com/pulsegrid/console/internal/view"
)

// tokenSource adapts the persisted token store to the API client.
type tokenSource struct {
	store *shared.TokenStore
}

func (t tokenSource) Token(ctx context.Context) (string, bool) {
	return t.store.Get(ctx)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	// The token store degrades to signed-out when redis is unreachable;
	// a failed ping is worth a warning, not a crash.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, sessions will not persist", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	tokens := shared.NewTokenStore(redisClient, cfg.TokenKey, cfg.TokenTTL)
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	client := api.New(cfg.APIBaseURL, tokenSource{store: tokens},
		api.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}),
		api.WithRecorder(metrics),
	)
	session := auth.NewSession(logger, client, tokens)
	session.Init(ctx)

	authHandler := auth.NewHandler(logger, session, templates, csrfManager)
	overviewHandler := overview.NewHandler(logger, overview.NewService(client), templates, csrfManager, session)
	usersHandler := users.NewHandler(logger, users.NewService(client), templates, csrfManager, session)
	subscriptionsHandler := subscriptions.NewHandler(logger, client, templates, csrfManager, session)
	logsHandler := syslogs.NewHandler(logger, client, templates, csrfManager, session)
	notificationsHandler := notifications.NewHandler(logger, notifications.NewService(logger, client), templates, csrfManager, session)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		Templates:            templates,
		Session:              session,
		CSRFManager:          csrfManager,
		AuthHandler:          authHandler,
		OverviewHandler:      overviewHandler,
		UsersHandler:         usersHandler,
		SubscriptionsHandler: subscriptionsHandler,
		LogsHandler:          logsHandler,
		NotificationsHandler: notificationsHandler,
		Metrics:              metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
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
