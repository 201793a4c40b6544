// Package overview renders the dashboard screen.
package overview

import (
	"context"

	"github.com/pulsegrid/console/internal/api"
)

// API is the slice of the admin API the dashboard consumes.
type API interface {
	Overview(ctx context.Context) (api.OverviewMetrics, error)
}

// Service fetches and shapes the dashboard aggregate.
type Service struct {
	client API
}

// NewService constructs a Service.
func NewService(client API) *Service {
	return &Service{client: client}
}

// GrowthBar is one growth-series point scaled for rendering.
type GrowthBar struct {
	Date    string
	Count   int
	Percent int
}

// Dashboard is the shaped dashboard view model.
type Dashboard struct {
	Metrics api.OverviewMetrics
	Growth  []GrowthBar
}

// Fetch pulls the overview aggregate and scales the growth series
// against its own maximum for bar rendering.
func (s *Service) Fetch(ctx context.Context) (Dashboard, error) {
	metrics, err := s.client.Overview(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	max := 0
	for _, p := range metrics.GrowthSeries {
		if p.Count > max {
			max = p.Count
		}
	}
	growth := make([]GrowthBar, 0, len(metrics.GrowthSeries))
	for _, p := range metrics.GrowthSeries {
		percent := 0
		if max > 0 {
			percent = p.Count * 100 / max
		}
		growth = append(growth, GrowthBar{Date: p.Date, Count: p.Count, Percent: percent})
	}
	return Dashboard{Metrics: metrics, Growth: growth}, nil
}
