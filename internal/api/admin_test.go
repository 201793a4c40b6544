package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUsersOmitsEmptyFilters(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	if _, err := client.Users(context.Background(), UserFilter{}); err != nil {
		t.Fatalf("Users: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("query = %q, want empty", gotQuery)
	}
}

func TestUsersEncodesSetFilters(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	filter := UserFilter{Status: "active", PlanType: "Pro", Query: "acme"}
	if _, err := client.Users(context.Background(), filter); err != nil {
		t.Fatalf("Users: %v", err)
	}
	want := "/api/admin/users?planType=Pro&q=acme&status=active"
	if gotURL != want {
		t.Fatalf("url = %q, want %q", gotURL, want)
	}
}

func TestSetUserStatusIsIdempotent(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["status"] != StatusSuspended {
			t.Errorf("status = %q, want suspended", body["status"])
		}
		_, _ = w.Write([]byte(`{"ok":true,"status":"suspended"}`))
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	for i := 0; i < 2; i++ {
		status, err := client.SetUserStatus(context.Background(), "u1", StatusSuspended)
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if status != StatusSuspended {
			t.Fatalf("call %d: status = %q, want suspended", i+1, status)
		}
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestMeFallsBackToAuthEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/me":
			w.WriteHeader(http.StatusNotFound)
		case "/api/auth/me":
			_, _ = w.Write([]byte(`{"user":{"_id":"u1","email":"ops@pulsegrid.io","isAdmin":true}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.ID != "u1" || !user.IsAdmin {
		t.Fatalf("user = %+v, want u1 admin", user)
	}
}

func TestDeleteUserUsesDeleteMethod(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	if err := client.DeleteUser(context.Background(), "u9"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/admin/users/u9" {
		t.Fatalf("got %s %s, want DELETE /api/admin/users/u9", gotMethod, gotPath)
	}
}
