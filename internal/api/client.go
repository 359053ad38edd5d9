// Package api is the access layer for the SQL Agent backend: a typed
// function per REST operation over a single configured HTTP client.
//
// Cross-cutting behavior lives in one place, the client's transport:
// the current credential is attached to every outgoing request, and an
// authentication-failure response tears the session down before the
// error ever reaches the caller. Individual operations are pure
// mappings from typed input to typed output with no branching beyond
// shape adaptation.
package api

import "context"

// Client defines one method per backend capability.
//
// All methods honor context cancellation. Failures are returned as
// *Error carrying the backend's status code and message where
// available; callers match on Kind (or the sentinel errors) rather
// than inspecting raw HTTP responses.
type Client interface {
	// Authenticate exchanges credentials for an API key and the account
	// record. It does not persist anything; that is the session
	// manager's job.
	Authenticate(ctx context.Context, email, password string) (string, *User, error)

	// Register creates an account. It never establishes a session.
	Register(ctx context.Context, email, password string) error

	// RefreshAPIKey rotates the caller's API key and returns the new one.
	RefreshAPIKey(ctx context.Context) (string, error)

	ListTemplates(ctx context.Context) ([]Template, error)
	GetTemplate(ctx context.Context, id int64) (*Template, error)
	CreateTemplate(ctx context.Context, in TemplateInput) (*Template, error)
	UpdateTemplate(ctx context.Context, id int64, in TemplateUpdate) (*Template, error)
	DeleteTemplate(ctx context.Context, id int64) error

	ExecuteQuery(ctx context.Context, templateID int64, question string) (*QueryResult, error)
	QueryHistory(ctx context.Context) ([]QueryRecord, error)

	UsageStats(ctx context.Context) (*UsageStats, error)
	DetailedUsage(ctx context.Context) ([]QueryRecord, error)

	UpdateSettings(ctx context.Context, in SettingsUpdate) (*User, error)

	SubscriptionPlans(ctx context.Context) ([]Plan, error)
	CurrentSubscription(ctx context.Context) (*Subscription, error)
	CreateCheckoutSession(ctx context.Context, priceID string) (string, error)
	CreatePortalSession(ctx context.Context) (string, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
}
