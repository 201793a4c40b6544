package auth

import (
	"log/slog"
	"net/http"

	"github.com/pulsegrid/console/internal/view"
)

// SigninPath is where unauthenticated or non-admin visitors are sent.
const SigninPath = "/signin"

// RequireAdmin gates admin screens on the session state.
//
// While the session is still resolving, a placeholder renders and no
// redirect fires; the redirect decision is only ever made against a
// settled state. Once ready, a missing or non-admin user redirects to
// the sign-in screen and the guarded content never renders.
func RequireAdmin(sess *Session, templates *view.Engine, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sess.Current()
			if state.Phase != PhaseReady {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusServiceUnavailable)
				if err := templates.Render(w, "pages/starting.html", view.TemplateData{Title: "Starting"}); err != nil && logger != nil {
					logger.Error("render starting", slog.Any("error", err))
				}
				return
			}
			if !state.Admin() {
				http.Redirect(w, r, SigninPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
