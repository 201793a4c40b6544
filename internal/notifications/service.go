package notifications

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pulsegrid/console/internal/api"
)

// SourceAPI is the slice of the admin API the aggregator reads from.
type SourceAPI interface {
	Overview(ctx context.Context) (api.OverviewMetrics, error)
	Subscriptions(ctx context.Context) (api.SubscriptionsSummary, error)
}

// Feed is one recomputed notification snapshot.
type Feed struct {
	Items  []Notice
	Unread int
}

// Service recomputes the notification feed on demand.
type Service struct {
	logger *slog.Logger
	source SourceAPI
	now    func() time.Time
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, source SourceAPI) *Service {
	return &Service{logger: logger, source: source, now: time.Now}
}

// Fetch pulls both source aggregates concurrently and derives the feed.
//
// The two fetches are independent: either may fail without aborting the
// other, and a partial result still yields the notices the surviving
// source supports. Fetch itself never fails; at worst the feed is empty.
func (s *Service) Fetch(ctx context.Context) Feed {
	var (
		overview    api.OverviewMetrics
		subs        api.SubscriptionsSummary
		overviewErr error
		subsErr     error
	)

	var g errgroup.Group
	g.Go(func() error {
		overview, overviewErr = s.source.Overview(ctx)
		return nil
	})
	g.Go(func() error {
		subs, subsErr = s.source.Subscriptions(ctx)
		return nil
	})
	_ = g.Wait()

	var overviewIn *api.OverviewMetrics
	if overviewErr == nil {
		overviewIn = &overview
	} else if s.logger != nil {
		s.logger.Warn("notifications overview fetch failed", slog.Any("error", overviewErr))
	}
	var subsIn *api.SubscriptionsSummary
	if subsErr == nil {
		subsIn = &subs
	} else if s.logger != nil {
		s.logger.Warn("notifications subscriptions fetch failed", slog.Any("error", subsErr))
	}

	items := Build(overviewIn, subsIn, s.now())
	return Feed{Items: items, Unread: len(items)}
}
