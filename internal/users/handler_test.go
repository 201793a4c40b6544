package users

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/auth"
	"github.com/pulsegrid/console/internal/shared"
	"github.com/pulsegrid/console/internal/view"
)

type stubAuthAPI struct{}

func (stubAuthAPI) Login(ctx context.Context, creds api.Credentials) (api.LoginResult, error) {
	return api.LoginResult{}, errors.New("not implemented")
}

func (stubAuthAPI) Me(ctx context.Context) (api.AuthUser, error) {
	return api.AuthUser{}, errors.New("not implemented")
}

func newUserRouter(t *testing.T, mock *mockAPI) http.Handler {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := auth.NewSession(logger, stubAuthAPI{}, shared.NewTokenStore(nil, "", 0))
	handler := NewHandler(logger, NewService(mock), templates, shared.NewCSRFManager("test-secret"), session)
	r := chi.NewRouter()
	r.Route("/users", handler.MountRoutes)
	return r
}

func TestListUsersRendersTable(t *testing.T) {
	lastActive := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	mock := &mockAPI{users: []api.UserRow{
		{ID: "u1", FullName: "Dana Ops", Email: "dana@example.com", Status: api.StatusActive, PlanType: api.PlanPro, LastActiveAt: &lastActive},
		{ID: "u2", Email: "kim@example.com", Status: api.StatusSuspended, PlanType: api.PlanFree},
	}}
	router := newUserRouter(t, mock)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Dana Ops", "kim@example.com", "suspended"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in the rendered table", want)
		}
	}
}

func TestListUsersForwardsFilters(t *testing.T) {
	mock := &mockAPI{}
	router := newUserRouter(t, mock)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users?status=active&planType=Pro&q=dana", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := api.UserFilter{Status: "active", PlanType: "Pro", Query: "dana"}
	if mock.lastFilter != want {
		t.Fatalf("expected filter %+v, got %+v", want, mock.lastFilter)
	}
}

func TestListUsersShowsUpstreamError(t *testing.T) {
	mock := &mockAPI{usersErr: errors.New("request failed")}
	router := newUserRouter(t, mock)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with inline error, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Request failed. Please try again.") {
		t.Fatal("expected the safe error message in the page")
	}
}

func TestSuspendRedirectsBackWithFlash(t *testing.T) {
	mock := &mockAPI{}
	router := newUserRouter(t, mock)

	req := httptest.NewRequest(http.MethodPost, "/users/u1/suspend", nil)
	req.Header.Set("Referer", "/users?status=active")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/users?status=active" {
		t.Fatalf("expected redirect back to the referring list, got %q", loc)
	}
	if len(mock.statusCalls) != 1 || mock.statusCalls[0] != "u1:suspended" {
		t.Fatalf("expected one suspend call, got %v", mock.statusCalls)
	}
	if rec.Result().Cookies()[0].Name != "pg_flash" {
		t.Fatal("expected a flash cookie on the redirect")
	}
}

func TestDeleteRedirectsToList(t *testing.T) {
	mock := &mockAPI{}
	router := newUserRouter(t, mock)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/u1/delete", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/users" {
		t.Fatalf("expected redirect to /users, got %q", loc)
	}
	if len(mock.deleted) != 1 || mock.deleted[0] != "u1" {
		t.Fatalf("expected delete of u1, got %v", mock.deleted)
	}
}
