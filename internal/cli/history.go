package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/render"
)

// History lists past query executions, optionally filtered to one
// template. The backend returns the full history; filtering happens
// here.
func (a *App) History(ctx context.Context, arg string) error {
	var templateID int64
	if arg != "" {
		id, err := parseID(arg, "history [templateID]")
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		templateID = id
	}

	records, err := a.api.QueryHistory(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load history:", api.Message(err, "request failed"))
		return err
	}

	if templateID != 0 {
		filtered := records[:0]
		for _, r := range records {
			if r.TemplateID == templateID {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Fprintln(a.out, "No queries yet.")
		return nil
	}

	return render.WriteTable(a.out, historyTable(records))
}

func historyTable(records []api.QueryRecord) *render.Table {
	table := &render.Table{Columns: []string{"id", "template", "status", "created", "question"}}
	for _, r := range records {
		table.Rows = append(table.Rows, map[string]any{
			"id":       strconv.FormatInt(r.ID, 10),
			"template": strconv.FormatInt(r.TemplateID, 10),
			"status":   r.Status,
			"created":  r.CreatedAt.Format("2006-01-02 15:04"),
			"question": r.Question,
		})
	}
	return table
}
