package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/render"
)

// Stats loads the aggregate summary and the recent-queries list
// concurrently and renders each independently: one of them failing must
// not keep the other off the screen.
func (a *App) Stats(ctx context.Context) error {
	var (
		wg        sync.WaitGroup
		stats     *api.UsageStats
		statsErr  error
		recent    []api.QueryRecord
		recentErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = a.api.UsageStats(ctx)
	}()
	go func() {
		defer wg.Done()
		recent, recentErr = a.api.DetailedUsage(ctx)
	}()
	wg.Wait()

	if statsErr != nil {
		fmt.Fprintln(a.out, "Could not load usage stats:", api.Message(statsErr, "request failed"))
	} else {
		fmt.Fprintf(a.out, "Total queries:   %d\n", stats.TotalQueries)
		fmt.Fprintf(a.out, "Successful:      %d\n", stats.SuccessfulQueries)
		fmt.Fprintf(a.out, "This month:      %d\n", stats.MonthlyQueries)
		fmt.Fprintf(a.out, "Success rate:    %.1f%%\n", stats.SuccessRate)
		fmt.Fprintf(a.out, "Credits left:    %.0f\n", stats.CreditsRemaining)
	}

	if recentErr != nil {
		fmt.Fprintln(a.out, "Could not load recent queries:", api.Message(recentErr, "request failed"))
	} else if len(recent) > 0 {
		fmt.Fprintln(a.out, "\nRecent queries:")
		if err := render.WriteTable(a.out, historyTable(recent)); err != nil {
			return err
		}
	}

	if statsErr != nil {
		return statsErr
	}
	return recentErr
}
