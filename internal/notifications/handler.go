package notifications

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulsegrid/console/internal/auth"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/view"
)

// Handler serves the notification feed screen.
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

// MountRoutes registers the notification routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showFeed)
	r.Get("/popover", h.showPopover)
}

type pageData struct {
	Feed Feed
}

// showFeed recomputes and renders the full notification page. Reloading
// the page is the manual refresh; nothing is cached between visits.
func (h *Handler) showFeed(w http.ResponseWriter, r *http.Request) {
	feed := h.service.Fetch(r.Context())
	state := h.session.Current()
	viewData := view.TemplateData{
		Title:       "Notifications",
		CSRFToken:   h.csrf.Token(h.session.RunID()),
		Flash:       shared.PopFlash(w, r),
		CurrentPath: r.URL.Path,
		User:        state.User,
		Unread:      feed.Unread,
		Data:        pageData{Feed: feed},
	}
	if err := h.templates.Render(w, "pages/notifications.html", viewData); err != nil {
		h.logger.Error("render notifications", slog.Any("error", err))
	}
}

// showPopover renders the bare notice list for the topbar popover.
func (h *Handler) showPopover(w http.ResponseWriter, r *http.Request) {
	feed := h.service.Fetch(r.Context())
	viewData := view.TemplateData{
		CurrentPath: r.URL.Path,
		Unread:      feed.Unread,
		Data:        pageData{Feed: feed},
	}
	if err := h.templates.Render(w, "partials/notices.html", viewData); err != nil {
		h.logger.Error("render notices popover", slog.Any("error", err))
	}
}
