package overview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsegrid/console/internal/api"
)

type mockAPI struct {
	metrics api.OverviewMetrics
	err     error
}

func (m *mockAPI) Overview(ctx context.Context) (api.OverviewMetrics, error) {
	return m.metrics, m.err
}

func TestFetchScalesGrowthAgainstMax(t *testing.T) {
	mock := &mockAPI{metrics: api.OverviewMetrics{
		TotalUsers: 40,
		GrowthSeries: []api.GrowthPoint{
			{Date: "2026-08-01", Count: 2},
			{Date: "2026-08-02", Count: 8},
			{Date: "2026-08-03", Count: 4},
		},
	}}
	svc := NewService(mock)

	dash, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, dash.Growth, 3)
	assert.Equal(t, 25, dash.Growth[0].Percent)
	assert.Equal(t, 100, dash.Growth[1].Percent, "the maximum point fills the bar")
	assert.Equal(t, 50, dash.Growth[2].Percent)
	assert.Equal(t, 40, dash.Metrics.TotalUsers)
}

func TestFetchHandlesFlatSeries(t *testing.T) {
	mock := &mockAPI{metrics: api.OverviewMetrics{
		GrowthSeries: []api.GrowthPoint{{Date: "2026-08-01", Count: 0}},
	}}
	svc := NewService(mock)

	dash, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, dash.Growth, 1)
	assert.Zero(t, dash.Growth[0].Percent, "an all-zero series never divides by zero")
}

func TestFetchPropagatesError(t *testing.T) {
	mock := &mockAPI{err: errors.New("request failed")}
	svc := NewService(mock)

	_, err := svc.Fetch(context.Background())
	require.Error(t, err)
}
