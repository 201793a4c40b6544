package api

import (
	"context"
	"net/url"
)

// UserFilter narrows the user list. Empty fields are omitted from the
// query string entirely.
type UserFilter struct {
	Status   string
	PlanType string
	Query    string
}

func (f UserFilter) encode() string {
	qs := url.Values{}
	if f.Status != "" {
		qs.Set("status", f.Status)
	}
	if f.PlanType != "" {
		qs.Set("planType", f.PlanType)
	}
	if f.Query != "" {
		qs.Set("q", f.Query)
	}
	if len(qs) == 0 {
		return ""
	}
	return "?" + qs.Encode()
}

// Overview fetches the dashboard aggregate.
func (c *Client) Overview(ctx context.Context) (OverviewMetrics, error) {
	var metrics OverviewMetrics
	if err := c.do(ctx, "overview.get", "GET", "/api/admin/overview", nil, &metrics); err != nil {
		return OverviewMetrics{}, err
	}
	return metrics, nil
}

// Users fetches the filtered user list.
func (c *Client) Users(ctx context.Context, filter UserFilter) ([]UserRow, error) {
	var envelope struct {
		Items []UserRow `json:"items"`
	}
	if err := c.do(ctx, "users.list", "GET", "/api/admin/users"+filter.encode(), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// User fetches a single account with its embedded subscription.
func (c *Client) User(ctx context.Context, id string) (UserDetail, error) {
	var detail UserDetail
	if err := c.do(ctx, "users.get", "GET", "/api/admin/users/"+url.PathEscape(id), nil, &detail); err != nil {
		return UserDetail{}, err
	}
	return detail, nil
}

// SetUserStatus suspends or activates an account. The call is idempotent
// from the console's perspective: suspending an already-suspended account
// succeeds as a server-side no-op.
func (c *Client) SetUserStatus(ctx context.Context, id, status string) (string, error) {
	body := map[string]string{"status": status}
	var result struct {
		OK     bool   `json:"ok"`
		Status string `json:"status"`
	}
	if err := c.do(ctx, "users.status", "PATCH", "/api/admin/users/"+url.PathEscape(id)+"/status", body, &result); err != nil {
		return "", err
	}
	return result.Status, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "users.delete", "DELETE", "/api/admin/users/"+url.PathEscape(id), nil, nil)
}

// Subscriptions fetches the billing summary and list.
func (c *Client) Subscriptions(ctx context.Context) (SubscriptionsSummary, error) {
	var summary SubscriptionsSummary
	if err := c.do(ctx, "subscriptions.list", "GET", "/api/admin/subscriptions", nil, &summary); err != nil {
		return SubscriptionsSummary{}, err
	}
	return summary, nil
}

// Logs fetches the system log list.
func (c *Client) Logs(ctx context.Context) ([]SystemLog, error) {
	var envelope struct {
		Items []SystemLog `json:"items"`
	}
	if err := c.do(ctx, "logs.list", "GET", "/api/admin/logs", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}
