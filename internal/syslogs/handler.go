// Package syslogs renders the immutable system event log screen.
package syslogs

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

// API is the slice of the admin API the log screen consumes.
type API interface {
	Logs(ctx context.Context) ([]api.SystemLog, error)
}

// Handler serves the system log screen.
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

// MountRoutes registers the log route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listLogs)
}

type pageData struct {
	Items []api.SystemLog
	Error string
}

func (h *Handler) listLogs(w http.ResponseWriter, r *http.Request) {
	items, err := h.client.Logs(r.Context())
	if err != nil {
		h.logger.Error("list logs failed", slog.Any("error", err))
		h.render(w, r, pageData{Error: shared.UserSafeMessage(err)})
		return
	}
	h.render(w, r, pageData{Items: items})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	state := h.session.Current()
	viewData := view.TemplateData{
		Title:       "System Logs",
		CSRFToken:   h.csrf.Token(h.session.RunID()),
		Flash:       shared.PopFlash(w, r),
		CurrentPath: r.URL.Path,
		User:        state.User,
		Data:        data,
	}
	if err := h.templates.Render(w, "pages/logs.html", viewData); err != nil {
		h.logger.Error("render logs", slog.Any("error", err))
	}
}
