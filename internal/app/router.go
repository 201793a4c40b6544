package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pulsegrid/console/internal/auth"
	"github.com/pulsegrid/console/internal/notifications"
	"github.com/pulsegrid/console/internal/observability"
	"github.com/pulsegrid/console/internal/overview"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/subscriptions"
	"github.com/pulsegrid/console/internal/syslogs"
	"github.com/pulsegrid/console/internal/users"
	"github.com/pulsegrid/console/internal/view"
	"github.com/pulsegrid/console/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	Templates            *view.Engine
	Session              *auth.Session
	CSRFManager          *shared.CSRFManager
	AuthHandler          *auth.Handler
	OverviewHandler      *overview.Handler
	UsersHandler         *users.Handler
	SubscriptionsHandler *subscriptions.Handler
	LogsHandler          *syslogs.Handler
	NotificationsHandler *notifications.Handler
	Metrics              *observability.Metrics
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:      params.Logger,
		Config:      params.Config,
		Session:     params.Session,
		CSRFManager: params.CSRFManager,
		Metrics:     params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Handle("/metrics", params.Metrics.Handler())
	}

	if static, err := fs.Sub(web.Static, "static"); err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	r.Group(func(r chi.Router) {
		r.Use(LoginRateLimit())
		params.AuthHandler.MountRoutes(r)
	})

	// Everything below requires a settled admin session.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(params.Session, params.Templates, params.Logger))
		params.OverviewHandler.MountRoutes(r)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/subscriptions", params.SubscriptionsHandler.MountRoutes)
		r.Route("/logs", params.LogsHandler.MountRoutes)
		r.Route("/notifications", params.NotificationsHandler.MountRoutes)
	})

	return r
}
