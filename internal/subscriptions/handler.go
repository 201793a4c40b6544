// Package subscriptions renders the read-only billing screen.
package subscriptions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/auth"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/view"
)

// API is the slice of the admin API the billing screen consumes.
type API interface {
	Subscriptions(ctx context.Context) (api.SubscriptionsSummary, error)
}

// Handler serves the subscriptions screen.
type Handler struct {
	logger    *slog.Logger
	client    API
	templates *view.Engine
	csrf      *shared.CSRFManager
	session   *auth.Session
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, client API, templates *view.Engine, csrf *shared.CSRFManager, session *auth.Session) *Handler {
	return &Handler{logger: logger, client: client, templates: templates, csrf: csrf, session: session}
}

// MountRoutes registers the subscriptions route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listSubscriptions)
}

type pageData struct {
	Summary api.SubscriptionsSummary
	Error   string
}

func (h *Handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	summary, err := h.client.Subscriptions(r.Context())
	if err != nil {
		h.logger.Error("list subscriptions failed", slog.Any("error", err))
		h.render(w, r, pageData{Error: shared.UserSafeMessage(err)})
		return
	}
	h.render(w, r, pageData{Summary: summary})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	state := h.session.Current()
	viewData := view.TemplateData{
		Title:       "Subscriptions",
		CSRFToken:   h.csrf.Token(h.session.RunID()),
		Flash:       shared.PopFlash(w, r),
		CurrentPath: r.URL.Path,
		User:        state.User,
		Data:        data,
	}
	if err := h.templates.Render(w, "pages/subscriptions.html", viewData); err != nil {
		h.logger.Error("render subscriptions", slog.Any("error", err))
	}
}
