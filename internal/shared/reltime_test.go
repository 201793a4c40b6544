package shared

import (
	"testing"
	"time"
)

func TestRelativeDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(v time.Time) *time.Time { return &v }

	testCases := []struct {
		name string
		at   *time.Time
		want string
	}{
		{name: "absent", at: nil, want: ""},
		{name: "zero value", at: &time.Time{}, want: ""},
		{name: "same day", at: at(now), want: "today"},
		{name: "three days out", at: at(now.Add(3 * 24 * time.Hour)), want: "in 3 days"},
		{name: "one day out", at: at(now.Add(24 * time.Hour)), want: "in 1 day"},
		{name: "one day ago", at: at(now.Add(-24 * time.Hour)), want: "1 day ago"},
		{name: "five days ago", at: at(now.Add(-5 * 24 * time.Hour)), want: "5 days ago"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RelativeDays(tc.at, now); got != tc.want {
				t.Fatalf("RelativeDays = %q, want %q", got, tc.want)
			}
		})
	}
}
