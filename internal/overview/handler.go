package overview

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulsegrid/console/internal/auth"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/view"
)

// Handler serves the dashboard screen.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	session   *auth.Session
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, session *auth.Session) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, session: session}
}

// MountRoutes registers the dashboard route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
}

type pageData struct {
	Dashboard Dashboard
	Error     string
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Fetch(r.Context())
	if err != nil {
		h.logger.Error("load overview failed", slog.Any("error", err))
		h.render(w, r, pageData{Error: shared.UserSafeMessage(err)})
		return
	}
	h.render(w, r, pageData{Dashboard: dashboard})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	state := h.session.Current()
	viewData := view.TemplateData{
		Title:       "Overview",
		CSRFToken:   h.csrf.Token(h.session.RunID()),
		Flash:       shared.PopFlash(w, r),
		CurrentPath: r.URL.Path,
		User:        state.User,
		Data:        data,
	}
	if err := h.templates.Render(w, "pages/overview.html", viewData); err != nil {
		h.logger.Error("render overview", slog.Any("error", err))
	}
}
