package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/view"
)

// Handler wires HTTP endpoints for sign-in and sign-out.
type Handler struct {
	logger    *slog.Logger
	session   *Session
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, session *Session, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		session:   session,
		templates: templates,
		csrf:      csrf,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get(SigninPath, h.showSignin)
	r.Post(SigninPath, h.handleSignin)
	r.Post("/logout", h.handleLogout)
}

type signinForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type signinPageData struct {
	Form   signinForm
	Errors map[string]string
}

func (h *Handler) showSignin(w http.ResponseWriter, r *http.Request) {
	if h.session.Current().Admin() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, signinPageData{}, http.StatusOK)
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := signinForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			formErrors[fieldErr.Field()] = fieldMessage(fieldErr)
		}
	}

	if len(formErrors) == 0 {
		user, err := h.session.Login(r.Context(), api.Credentials{Email: form.Email, Password: form.Password})
		if err != nil {
			if h.logger != nil {
				h.logger.Warn("login rejected", slog.String("email", form.Email), slog.Any("error", err))
			}
			formErrors["general"] = loginMessage(err)
		} else if !user.IsAdmin {
			// Authenticated but not an operator; drop the session again.
			h.session.Logout(r.Context())
			formErrors["general"] = "This console is restricted to administrators."
		} else {
			shared.SetFlash(w, shared.FlashMessage{Kind: "success", Message: "Welcome back, " + user.DisplayName()})
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	form.Password = ""
	h.render(w, r, signinPageData{Form: form, Errors: formErrors}, http.StatusUnprocessableEntity)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	http.Redirect(w, r, SigninPath, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data signinPageData, status int) {
	flash := shared.PopFlash(w, r)
	viewData := view.TemplateData{
		Title:       "Sign in",
		CSRFToken:   h.csrf.Token(h.session.RunID()),
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, "pages/signin.html", viewData); err != nil && h.logger != nil {
		h.logger.Error("render signin", slog.Any("error", err))
	}
}

// loginMessage maps a login failure to screen text. Only an upstream
// 401 reads as bad credentials; an unreachable API keeps the generic
// failure message instead of blaming the operator's password.
func loginMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return shared.UserSafeMessage(shared.ErrInvalidCredentials)
	}
	return shared.UserSafeMessage(err)
}

func fieldMessage(err validator.FieldError) string {
	switch err.Field() {
	case "Email":
		return "Enter a valid email address."
	case "Password":
		return "Password must be at least 8 characters."
	default:
		return "Invalid value."
	}
}
