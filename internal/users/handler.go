package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/auth"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/view"
)

// Handler manages the account management endpoints.
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

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Get("/{id}", h.showUser)
	r.Post("/{id}/suspend", h.suspendUser)
	r.Post("/{id}/activate", h.activateUser)
	r.Post("/{id}/delete", h.deleteUser)
}

type listPageData struct {
	Users  []Row
	Filter api.UserFilter
	Error  string
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	filter := api.UserFilter{
		Status:   r.URL.Query().Get("status"),
		PlanType: r.URL.Query().Get("planType"),
		Query:    r.URL.Query().Get("q"),
	}
	rows, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list users failed", slog.Any("error", err))
		h.render(w, r, "pages/users/list.html", "Users", listPageData{Filter: filter, Error: shared.UserSafeMessage(err)}, http.StatusOK)
		return
	}
	h.render(w, r, "pages/users/list.html", "Users", listPageData{Users: rows, Filter: filter}, http.StatusOK)
}

type detailPageData struct {
	User         api.UserRow
	Name         string
	Subscription *api.SubscriptionRow
	Error        string
}

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("load user failed", slog.String("id", id), slog.Any("error", err))
		h.render(w, r, "pages/users/detail.html", "User", detailPageData{Error: shared.UserSafeMessage(err)}, http.StatusOK)
		return
	}
	data := detailPageData{
		User:         detail.User,
		Name:         detail.User.DisplayName(),
		Subscription: detail.Subscription,
	}
	h.render(w, r, "pages/users/detail.html", data.Name, data, http.StatusOK)
}

func (h *Handler) suspendUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.Suspend(r.Context(), id); err != nil {
		h.logger.Error("suspend user failed", slog.String("id", id), slog.Any("error", err))
		h.redirectWithFlash(w, r, "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "success", "Account suspended")
}

func (h *Handler) activateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.Activate(r.Context(), id); err != nil {
		h.logger.Error("activate user failed", slog.String("id", id), slog.Any("error", err))
		h.redirectWithFlash(w, r, "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "success", "Account activated")
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete user failed", slog.String("id", id), slog.Any("error", err))
		h.redirectWithFlash(w, r, "error", shared.UserSafeMessage(err))
		return
	}
	shared.SetFlash(w, shared.FlashMessage{Kind: "success", Message: "Account deleted"})
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// redirectWithFlash sends the visitor back to the list with a one-time
// message. Mutations refetch by redirect rather than holding any state.
func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	shared.SetFlash(w, shared.FlashMessage{Kind: kind, Message: message})
	target := r.Referer()
	if target == "" {
		target = "/users"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string, data any, status int) {
	state := h.session.Current()
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   h.csrf.Token(h.session.RunID()),
		Flash:       shared.PopFlash(w, r),
		CurrentPath: r.URL.Path,
		User:        state.User,
		Data:        data,
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.String("template", template), slog.Any("error", err))
	}
}
