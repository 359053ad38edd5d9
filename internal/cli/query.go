package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/render"
)

func (a *App) Query(ctx context.Context, arg string) error {
	templateID, err := parseID(arg, "query <templateID>")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	question, err := GetSimpleText(a.reader, "Enter your question", a.out)
	if err != nil {
		return err
	}
	if question == "" {
		fmt.Fprintln(a.out, "Nothing to ask.")
		return nil
	}

	fmt.Fprintln(a.out, "Running query...")
	result, err := a.api.ExecuteQuery(ctx, templateID, question)
	if err != nil {
		if api.StatusOf(err) == http.StatusPaymentRequired {
			fmt.Fprintln(a.out, "You have used all your credits. Run 'subscription' to upgrade.")
			return err
		}
		fmt.Fprintln(a.out, "Query failed:", api.Message(err, "request failed"))
		return err
	}

	if result.SQL != "" {
		fmt.Fprintf(a.out, "Generated SQL: %s\n", result.SQL)
	}

	decoded := render.Decode(result.Result)
	if decoded.Table != nil {
		return render.WriteTable(a.out, decoded.Table)
	}
	fmt.Fprintln(a.out, decoded.Text())
	return nil
}
