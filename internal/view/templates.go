package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	User        *api.AuthUser
	Unread      int
	Data        any
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	money := message.NewPrinter(language.English)
	funcMap := template.FuncMap{
		"formatDate": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"formatTime": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"relTime": func(t *time.Time) string {
			return shared.RelativeDays(t, time.Now())
		},
		"money": func(cents int64) string {
			return money.Sprintf("$%.2f", float64(cents)/100)
		},
		"percent": func(rate float64) string {
			return fmt.Sprintf("%.1f%%", rate*100)
		},
		"pillClass": pillClass,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates,
		"templates/layouts/*.html",
		"templates/partials/*.html",
		"templates/pages/*.html",
		"templates/pages/users/*.html",
	)
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// pillClass maps a closed-enum status value to its pill CSS class. An
// unknown value is a display bug upstream; it falls through to neutral.
// Account and payment "active" share one case, and the notice severity
// values appear as literals so the view stays a leaf package.
func pillClass(value string) string {
	switch value {
	case api.StatusActive, "success":
		return "pill pill-green"
	case api.StatusSuspended, api.PaymentOverdue, api.SeverityError, "danger":
		return "pill pill-red"
	case api.PaymentPending, api.SeverityWarning:
		return "pill pill-amber"
	default:
		return "pill"
	}
}
