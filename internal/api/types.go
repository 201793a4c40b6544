// Package api is a typed client for the PulseGrid admin REST API.
//
// Every console screen reads and mutates remote state exclusively through
// this package; the console itself owns no database.
package api

import "time"

// Account status values.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Plan types.
const (
	PlanFree       = "Free"
	PlanTrial      = "Trial"
	PlanPro        = "Pro"
	PlanEnterprise = "Enterprise"
)

// Payment status values.
const (
	PaymentActive  = "active"
	PaymentPending = "pending"
	PaymentOverdue = "overdue"
)

// Log severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// AuthUser is the identity returned by the login and who-am-I endpoints.
type AuthUser struct {
	ID          string `json:"_id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	IsAdmin     bool   `json:"isAdmin,omitempty"`
}

// DisplayName returns the best available label for the user.
func (u AuthUser) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.FirstName != "":
		return u.FirstName + " " + u.LastName
	default:
		return u.Email
	}
}

// UserRow is one account record in the user management table.
type UserRow struct {
	ID           string     `json:"_id"`
	FullName     string     `json:"fullName,omitempty"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	Email        string     `json:"email"`
	CompanyName  string     `json:"companyName,omitempty"`
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`
	Status       string     `json:"status,omitempty"`
	PlanType     string     `json:"planType,omitempty"`
}

// DisplayName returns the best available label for the account.
func (u UserRow) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.FirstName != "":
		return u.FirstName + " " + u.LastName
	default:
		return u.Email
	}
}

// RecentUser is one entry in the overview recent-signup list.
type RecentUser struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// GrowthPoint is one point in the overview growth series.
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ActiveBreakdown splits accounts into active and inactive counts.
type ActiveBreakdown struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// OverviewMetrics is the dashboard aggregate snapshot. It has no identity
// of its own and is recomputed wholesale on every fetch.
type OverviewMetrics struct {
	TotalUsers      int             `json:"totalUsers"`
	ActiveUsers     int             `json:"activeUsers"`
	NewSignups      int             `json:"newSignups"`
	ConversionRate  float64         `json:"conversionRate"`
	GrowthSeries    []GrowthPoint   `json:"growthSeries"`
	ActiveBreakdown ActiveBreakdown `json:"activeBreakdown"`
	RecentUsers     []RecentUser    `json:"recentUsers"`
}

// SubscriptionUser references the owning account of a subscription.
type SubscriptionUser struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Label returns the best available label for the subscription owner.
func (u SubscriptionUser) Label() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}

// SubscriptionRow is one billing record. Read-only from the console.
type SubscriptionRow struct {
	ID            string           `json:"_id"`
	User          SubscriptionUser `json:"user"`
	PlanType      string           `json:"planType"`
	RenewalDate   *time.Time       `json:"renewalDate,omitempty"`
	PaymentStatus string           `json:"paymentStatus"`
	AmountCents   int64            `json:"amountCents,omitempty"`
}

// SubscriptionsSummary is the subscriptions page aggregate.
type SubscriptionsSummary struct {
	TotalPaid              int               `json:"totalPaid"`
	Trials                 int               `json:"trials"`
	ConversionRate         float64           `json:"conversionRate"`
	EstMonthlyRevenueCents int64             `json:"estMonthlyRevenueCents"`
	Items                  []SubscriptionRow `json:"items"`
}

// SystemLog is one immutable system event record.
type SystemLog struct {
	ID       string     `json:"_id"`
	Time     *time.Time `json:"time,omitempty"`
	Event    string     `json:"event"`
	Severity string     `json:"severity"`
	Details  string     `json:"details,omitempty"`
}

// UserDetail is a single account with its embedded subscription.
type UserDetail struct {
	User         UserRow          `json:"user"`
	Subscription *SubscriptionRow `json:"subscription,omitempty"`
}
