package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlagent/sqlagent-cli/internal/api"
)

func TestPlans(t *testing.T) {
	f := &fakeClient{plans: []api.Plan{
		{ID: "starter", Name: "Starter", Price: 9.99, Features: []string{"100 queries"}, StripePriceID: "price_1"},
	}}
	app, out := newTestApp(f, "")

	require.NoError(t, app.Plans(context.Background()))
	got := out.String()
	assert.Contains(t, got, "Starter")
	assert.Contains(t, got, "$9.99")
	assert.Contains(t, got, "price_1")
}

func TestSubscription_None(t *testing.T) {
	app, out := newTestApp(&fakeClient{}, "")
	require.NoError(t, app.Subscription(context.Background()))
	assert.Contains(t, out.String(), "No active subscription")
}

func TestSubscription_Active(t *testing.T) {
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	f := &fakeClient{subscription: &api.Subscription{
		PlanID:           "pro",
		Status:           "active",
		CurrentPeriodEnd: &end,
	}}
	app, out := newTestApp(f, "")

	require.NoError(t, app.Subscription(context.Background()))
	got := out.String()
	assert.Contains(t, got, "pro")
	assert.Contains(t, got, "2026-09-30")
}

func TestCheckout(t *testing.T) {
	f := &fakeClient{checkoutURL: "https://billing.example.com/c/sess_123"}
	app, out := newTestApp(f, "")

	require.NoError(t, app.Checkout(context.Background(), "price_1"))
	assert.Equal(t, "price_1", f.lastPriceID)
	assert.Contains(t, out.String(), "https://billing.example.com/c/sess_123")
}

func TestCheckout_MissingPriceID(t *testing.T) {
	app, out := newTestApp(&fakeClient{}, "")
	require.Error(t, app.Checkout(context.Background(), ""))
	assert.Contains(t, out.String(), "usage: checkout <priceID>")
}

func TestInvoices(t *testing.T) {
	f := &fakeClient{invoices: []api.Invoice{
		{ID: "in_1", AmountDue: 9.99, Currency: "usd", Status: "paid", Created: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Unix()},
	}}
	app, out := newTestApp(f, "")

	require.NoError(t, app.Invoices(context.Background()))
	got := out.String()
	assert.Contains(t, got, "in_1")
	assert.Contains(t, got, "9.99 USD")
	assert.Contains(t, got, "paid")
}
