// Package notifications derives alert notices from the overview and
// subscriptions aggregates. Notices are ephemeral: they are recomputed
// from scratch on every fetch and never persisted.
package notifications

import (
	"sort"
	"strings"
	"time"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/shared"
)

// Notice severities, in display-rank order.
const (
	SeverityDanger  = "danger"
	SeverityWarning = "warning"
	SeveritySuccess = "success"
	SeverityInfo    = "info"
)

// renewalWindow is how far ahead an active subscription's renewal date
// may be to count as upcoming. Inclusive of today, exclusive of the past.
const renewalWindow = 7 * 24 * time.Hour

// Notice is one derived alert. The nid is deterministic per source
// record so re-derivation across refreshes is idempotent.
type Notice struct {
	NID         string
	Title       string
	Description string
	Severity    string
	Time        string
	Read        bool
}

var severityRank = map[string]int{
	SeverityDanger:  0,
	SeverityWarning: 1,
	SeveritySuccess: 2,
	SeverityInfo:    3,
}

// Build derives the sorted notice list from the two source aggregates.
// Either input may be nil; the corresponding notices are simply absent.
func Build(overview *api.OverviewMetrics, subs *api.SubscriptionsSummary, now time.Time) []Notice {
	var notices []Notice

	if overview != nil {
		for _, u := range overview.RecentUsers {
			label := u.Name
			if label == "" {
				label = u.Email
			}
			if label == "" {
				label = "New user"
			}
			notices = append(notices, Notice{
				NID:         "signup-" + u.ID,
				Title:       "New signup: " + label,
				Description: u.Email,
				Severity:    SeveritySuccess,
				Time:        shared.RelativeDays(u.CreatedAt, now),
			})
		}
	}

	if subs != nil {
		for _, s := range subs.Items {
			who := s.User.Label()
			switch {
			case s.PaymentStatus == api.PaymentOverdue:
				notices = append(notices, Notice{
					NID:         "sub-overdue-" + s.ID,
					Title:       "Payment overdue: " + who,
					Description: s.PlanType + " plan",
					Severity:    SeverityDanger,
					Time:        shared.RelativeDays(s.RenewalDate, now),
				})
			case s.PaymentStatus == api.PaymentPending:
				notices = append(notices, Notice{
					NID:         "sub-pending-" + s.ID,
					Title:       "Pending payment: " + who,
					Description: s.PlanType + " plan",
					Severity:    SeverityWarning,
					Time:        shared.RelativeDays(s.RenewalDate, now),
				})
			case s.PaymentStatus == api.PaymentActive && nearRenewal(s.RenewalDate, now):
				notices = append(notices, Notice{
					NID:         "sub-renew-" + s.ID,
					Title:       "Upcoming renewal: " + who,
					Description: s.PlanType + " plan",
					Severity:    SeverityInfo,
					Time:        shared.RelativeDays(s.RenewalDate, now),
				})
			}
		}
	}

	// Primary: severity rank. Secondary: descending string order of the
	// relative-time label. The secondary key is a label comparison, not a
	// chronological sort, and is kept as shipped.
	sort.SliceStable(notices, func(i, j int) bool {
		ri, rj := severityRank[notices[i].Severity], severityRank[notices[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return strings.Compare(notices[j].Time, notices[i].Time) < 0
	})
	return notices
}

// nearRenewal reports whether the renewal date falls within the upcoming
// renewal window.
func nearRenewal(t *time.Time, now time.Time) bool {
	if t == nil || t.IsZero() {
		return false
	}
	diff := t.Sub(now)
	return diff >= 0 && diff <= renewalWindow
}
