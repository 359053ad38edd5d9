package cli

import (
	"context"

	"github.com/sqlagent/sqlagent-cli/internal/api"
)

// fakeClient returns canned responses and records the arguments of the
// calls the tests care about. err, when set, is returned by every
// method.
type fakeClient struct {
	err error

	authKey  string
	authUser *api.User

	templates []api.Template
	template  *api.Template

	queryResult *api.QueryResult
	history     []api.QueryRecord

	stats    *api.UsageStats
	statsErr error
	detailed []api.QueryRecord

	refreshedKey string
	updatedUser  *api.User

	plans        []api.Plan
	subscription *api.Subscription
	checkoutURL  string
	portalURL    string
	invoices     []api.Invoice

	lastTemplateID int64
	lastQuestion   string
	lastCreate     api.TemplateInput
	lastUpdate     api.TemplateUpdate
	lastSettings   api.SettingsUpdate
	lastPriceID    string
	deletedID      int64
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Authenticate(ctx context.Context, email, password string) (string, *api.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.authKey, f.authUser, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password string) error {
	return f.err
}

func (f *fakeClient) RefreshAPIKey(ctx context.Context) (string, error) {
	return f.refreshedKey, f.err
}

func (f *fakeClient) ListTemplates(ctx context.Context) ([]api.Template, error) {
	return f.templates, f.err
}

func (f *fakeClient) GetTemplate(ctx context.Context, id int64) (*api.Template, error) {
	f.lastTemplateID = id
	return f.template, f.err
}

func (f *fakeClient) CreateTemplate(ctx context.Context, in api.TemplateInput) (*api.Template, error) {
	f.lastCreate = in
	return f.template, f.err
}

func (f *fakeClient) UpdateTemplate(ctx context.Context, id int64, in api.TemplateUpdate) (*api.Template, error) {
	f.lastTemplateID = id
	f.lastUpdate = in
	return f.template, f.err
}

func (f *fakeClient) DeleteTemplate(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func (f *fakeClient) ExecuteQuery(ctx context.Context, templateID int64, question string) (*api.QueryResult, error) {
	f.lastTemplateID = templateID
	f.lastQuestion = question
	if f.err != nil {
		return nil, f.err
	}
	return f.queryResult, nil
}

func (f *fakeClient) QueryHistory(ctx context.Context) ([]api.QueryRecord, error) {
	return f.history, f.err
}

func (f *fakeClient) UsageStats(ctx context.Context) (*api.UsageStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, f.err
}

func (f *fakeClient) DetailedUsage(ctx context.Context) ([]api.QueryRecord, error) {
	return f.detailed, f.err
}

func (f *fakeClient) UpdateSettings(ctx context.Context, in api.SettingsUpdate) (*api.User, error) {
	f.lastSettings = in
	return f.updatedUser, f.err
}

func (f *fakeClient) SubscriptionPlans(ctx context.Context) ([]api.Plan, error) {
	return f.plans, f.err
}

func (f *fakeClient) CurrentSubscription(ctx context.Context) (*api.Subscription, error) {
	return f.subscription, f.err
}

func (f *fakeClient) CreateCheckoutSession(ctx context.Context, priceID string) (string, error) {
	f.lastPriceID = priceID
	return f.checkoutURL, f.err
}

func (f *fakeClient) CreatePortalSession(ctx context.Context) (string, error) {
	return f.portalURL, f.err
}

func (f *fakeClient) ListInvoices(ctx context.Context) ([]api.Invoice, error) {
	return f.invoices, f.err
}
