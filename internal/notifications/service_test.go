package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsegrid/console/internal/api"
)

type mockSource struct {
	overview          api.OverviewMetrics
	subs              api.SubscriptionsSummary
	overviewErr       error
	subsErr           error
	overviewCalls     int
	subscriptionCalls int
}

func (m *mockSource) Overview(ctx context.Context) (api.OverviewMetrics, error) {
	m.overviewCalls++
	return m.overview, m.overviewErr
}

func (m *mockSource) Subscriptions(ctx context.Context) (api.SubscriptionsSummary, error) {
	m.subscriptionCalls++
	return m.subs, m.subsErr
}

func fixedSource() *mockSource {
	created := time.Now().Add(-24 * time.Hour)
	renewal := time.Now().Add(2 * 24 * time.Hour)
	return &mockSource{
		overview: api.OverviewMetrics{
			RecentUsers: []api.RecentUser{
				{ID: "u1", Name: "Ada", Email: "ada@acme.io", CreatedAt: &created},
			},
		},
		subs: api.SubscriptionsSummary{
			Items: []api.SubscriptionRow{
				{ID: "s1", User: api.SubscriptionUser{Name: "Grace"}, PlanType: api.PlanPro, PaymentStatus: api.PaymentActive, RenewalDate: &renewal},
			},
		},
	}
}

func TestFetchMergesBothSources(t *testing.T) {
	source := fixedSource()
	service := NewService(nil, source)

	feed := service.Fetch(context.Background())
	require.Len(t, feed.Items, 2)
	assert.Equal(t, 2, feed.Unread)
	assert.Equal(t, 1, source.overviewCalls)
	assert.Equal(t, 1, source.subscriptionCalls)
}

func TestFetchToleratesSubscriptionsFailure(t *testing.T) {
	source := fixedSource()
	source.subsErr = errors.New("request failed")
	service := NewService(nil, source)

	feed := service.Fetch(context.Background())
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "signup-u1", feed.Items[0].NID)
}

func TestFetchToleratesOverviewFailure(t *testing.T) {
	source := fixedSource()
	source.overviewErr = errors.New("request failed")
	service := NewService(nil, source)

	feed := service.Fetch(context.Background())
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "sub-renew-s1", feed.Items[0].NID)
}

func TestFetchToleratesTotalFailure(t *testing.T) {
	source := fixedSource()
	source.overviewErr = errors.New("request failed")
	source.subsErr = errors.New("request failed")
	service := NewService(nil, source)

	feed := service.Fetch(context.Background())
	assert.Empty(t, feed.Items)
	assert.Zero(t, feed.Unread)
}
