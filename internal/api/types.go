package api

import (
	"encoding/json"
	"time"
)

// User is the account record returned by the backend. The client never
// derives any of these fields itself; the cached copy is always replaced
// wholesale with whatever the server last returned.
type User struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	APIKey             string    `json:"api_key"`
	IsActive           bool      `json:"is_active"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreditsRemaining   float64   `json:"credits_remaining"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ExampleQuery is a single natural-language question paired with the SQL
// it should translate to.
type ExampleQuery struct {
	Question string `json:"question"`
	Query    string `json:"query"`
}

// Template is a named database connection with example queries.
// DatabaseURI is write-mostly: it is sent on create/update but must never
// be displayed back unmasked.
type Template struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	DatabaseURI    string         `json:"database_uri"`
	ExampleQueries []ExampleQuery `json:"example_queries"`
	IsPublic       bool           `json:"is_public"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TemplateInput is the body for creating a template.
type TemplateInput struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	DatabaseURI    string         `json:"database_uri"`
	ExampleQueries []ExampleQuery `json:"example_queries"`
	IsPublic       bool           `json:"is_public"`
}

// TemplateUpdate is a partial update; nil fields are left untouched
// server-side.
type TemplateUpdate struct {
	Name           *string         `json:"name,omitempty"`
	Description    *string         `json:"description,omitempty"`
	DatabaseURI    *string         `json:"database_uri,omitempty"`
	ExampleQueries *[]ExampleQuery `json:"example_queries,omitempty"`
	IsPublic       *bool           `json:"is_public,omitempty"`
}

// QueryRecord is one logged query execution. Immutable once created
// server-side.
type QueryRecord struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	TemplateID    int64     `json:"template_id"`
	Question      string    `json:"question"`
	GeneratedSQL  string    `json:"generated_sql"`
	ExecutionTime float64   `json:"execution_time"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message"`
	CreatedAt     time.Time `json:"created_at"`
}

// QueryResult is the outcome of executing a natural-language query.
// Result is kept raw: its shape is decided by the queried database and
// is interpreted by the render package, not here.
type QueryResult struct {
	SQL    string          `json:"sql"`
	Result json.RawMessage `json:"result"`
}

// UsageStats is the aggregate usage summary.
type UsageStats struct {
	TotalQueries      int     `json:"total_queries"`
	SuccessfulQueries int     `json:"successful_queries"`
	MonthlyQueries    int     `json:"monthly_queries"`
	SuccessRate       float64 `json:"success_rate"`
	CreditsRemaining  float64 `json:"credits_remaining"`
}

// SettingsUpdate is a partial user-settings change; nil fields are left
// untouched server-side.
type SettingsUpdate struct {
	Email              *string `json:"email,omitempty"`
	Password           *string `json:"password,omitempty"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
}

// Plan is a purchasable subscription plan.
type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Features      []string `json:"features"`
	StripePriceID string   `json:"stripe_price_id"`
}

// Subscription is the caller's current subscription, or absent entirely
// for accounts that never subscribed.
type Subscription struct {
	ID                 int64      `json:"id"`
	PlanID             string     `json:"plan_id"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
}

// Invoice is a past billing invoice.
type Invoice struct {
	ID         string  `json:"id"`
	AmountDue  float64 `json:"amount_due"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	Created    int64   `json:"created"`
	InvoicePDF string  `json:"invoice_pdf"`
}
