package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/render"
)

// Plans lists the purchasable plans. Reachable without a credential so
// visitors can see pricing before registering.
func (a *App) Plans(ctx context.Context) error {
	plans, err := a.api.SubscriptionPlans(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load plans:", api.Message(err, "request failed"))
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(a.out, "No plans available.")
		return nil
	}

	table := &render.Table{Columns: []string{"id", "name", "price", "features", "price id"}}
	for _, p := range plans {
		table.Rows = append(table.Rows, map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"price":    fmt.Sprintf("$%.2f", p.Price),
			"features": strings.Join(p.Features, ", "),
			"price id": p.StripePriceID,
		})
	}
	return render.WriteTable(a.out, table)
}

func (a *App) Subscription(ctx context.Context) error {
	sub, err := a.api.CurrentSubscription(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load subscription:", api.Message(err, "request failed"))
		return err
	}
	if sub == nil {
		fmt.Fprintln(a.out, "No active subscription. See 'plans' and 'checkout <priceID>'.")
		return nil
	}

	fmt.Fprintf(a.out, "Plan:    %s\n", sub.PlanID)
	fmt.Fprintf(a.out, "Status:  %s\n", sub.Status)
	if sub.CurrentPeriodEnd != nil {
		fmt.Fprintf(a.out, "Renews:  %s\n", sub.CurrentPeriodEnd.Format(time.DateOnly))
	}
	if sub.CancelAtPeriodEnd {
		fmt.Fprintln(a.out, "Cancels at the end of the current period.")
	}
	return nil
}

// Checkout starts a billing checkout. The payment flow itself happens
// in the browser; the CLI only hands over the URL.
func (a *App) Checkout(ctx context.Context, arg string) error {
	if arg == "" {
		fmt.Fprintln(a.out, "usage: checkout <priceID>")
		return fmt.Errorf("usage: checkout <priceID>")
	}

	sessionURL, err := a.api.CreateCheckoutSession(ctx, arg)
	if err != nil {
		fmt.Fprintln(a.out, "Could not start checkout:", api.Message(err, "request failed"))
		return err
	}
	fmt.Fprintf(a.out, "Open this URL to complete checkout:\n%s\n", sessionURL)
	return nil
}

func (a *App) Portal(ctx context.Context) error {
	portalURL, err := a.api.CreatePortalSession(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not open the billing portal:", api.Message(err, "request failed"))
		return err
	}
	fmt.Fprintf(a.out, "Open this URL to manage billing:\n%s\n", portalURL)
	return nil
}

func (a *App) Invoices(ctx context.Context) error {
	invoices, err := a.api.ListInvoices(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load invoices:", api.Message(err, "request failed"))
		return err
	}
	if len(invoices) == 0 {
		fmt.Fprintln(a.out, "No invoices yet.")
		return nil
	}

	table := &render.Table{Columns: []string{"id", "amount", "status", "date"}}
	for _, inv := range invoices {
		table.Rows = append(table.Rows, map[string]any{
			"id":     inv.ID,
			"amount": fmt.Sprintf("%.2f %s", inv.AmountDue, strings.ToUpper(inv.Currency)),
			"status": inv.Status,
			"date":   time.Unix(inv.Created, 0).Format(time.DateOnly),
		})
	}
	return render.WriteTable(a.out, table)
}
