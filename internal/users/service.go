// Package users renders the account management screens.
package users

import (
	"context"

	"github.com/pulsegrid/console/internal/api"
)

// API is the slice of the admin API the user screens consume.
type API interface {
	Users(ctx context.Context, filter api.UserFilter) ([]api.UserRow, error)
	User(ctx context.Context, id string) (api.UserDetail, error)
	SetUserStatus(ctx context.Context, id, status string) (string, error)
	DeleteUser(ctx context.Context, id string) error
}

// Service wraps account operations for the user screens.
type Service struct {
	client API
}

// NewService constructs a Service.
func NewService(client API) *Service {
	return &Service{client: client}
}

// Row is one table row with display fields resolved.
type Row struct {
	api.UserRow
	Name string
}

// List fetches the filtered account table.
func (s *Service) List(ctx context.Context, filter api.UserFilter) ([]Row, error) {
	items, err := s.client.Users(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(items))
	for _, u := range items {
		rows = append(rows, Row{UserRow: u, Name: u.DisplayName()})
	}
	return rows, nil
}

// Get fetches a single account with its embedded subscription.
func (s *Service) Get(ctx context.Context, id string) (api.UserDetail, error) {
	return s.client.User(ctx, id)
}

// Suspend marks the account suspended. Calling it on an already
// suspended account succeeds; the server treats it as a no-op.
func (s *Service) Suspend(ctx context.Context, id string) (string, error) {
	return s.client.SetUserStatus(ctx, id, api.StatusSuspended)
}

// Activate marks the account active.
func (s *Service) Activate(ctx context.Context, id string) (string, error) {
	return s.client.SetUserStatus(ctx, id, api.StatusActive)
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.DeleteUser(ctx, id)
}
