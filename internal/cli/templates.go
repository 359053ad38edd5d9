package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/render"
)

// maskURI hides everything but the scheme of a database connection
// string. The URI is write-mostly: it is entered on create/edit and
// never displayed back unmasked.
func maskURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "********"
	}
	return u.Scheme + "://********"
}

func parseID(arg, usage string) (int64, error) {
	if arg == "" {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return id, nil
}

func (a *App) Templates(ctx context.Context) error {
	templates, err := a.api.ListTemplates(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load templates:", api.Message(err, "request failed"))
		return err
	}
	if len(templates) == 0 {
		fmt.Fprintln(a.out, "No templates yet. Create one with 'newtemplate'.")
		return nil
	}

	table := &render.Table{Columns: []string{"id", "name", "public", "description"}}
	for _, t := range templates {
		table.Rows = append(table.Rows, map[string]any{
			"id":          strconv.FormatInt(t.ID, 10),
			"name":        t.Name,
			"public":      t.IsPublic,
			"description": t.Description,
		})
	}
	return render.WriteTable(a.out, table)
}

func (a *App) ShowTemplate(ctx context.Context, arg string) error {
	id, err := parseID(arg, "template <id>")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	t, err := a.api.GetTemplate(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load template:", api.Message(err, "request failed"))
		return err
	}

	fmt.Fprintf(a.out, "Template %d: %s\n", t.ID, t.Name)
	if t.Description != "" {
		fmt.Fprintf(a.out, "  Description: %s\n", t.Description)
	}
	fmt.Fprintf(a.out, "  Database:    %s\n", maskURI(t.DatabaseURI))
	fmt.Fprintf(a.out, "  Public:      %v\n", t.IsPublic)
	if len(t.ExampleQueries) > 0 {
		fmt.Fprintln(a.out, "  Examples:")
		for _, e := range t.ExampleQueries {
			fmt.Fprintf(a.out, "    Q: %s\n    SQL: %s\n", e.Question, e.Query)
		}
	}
	return nil
}

func (a *App) NewTemplate(ctx context.Context) error {
	var in api.TemplateInput
	var err error

	if in.Name, err = GetSimpleText(a.reader, "Template name", a.out); err != nil {
		return err
	}
	if in.Description, err = GetSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	if in.DatabaseURI, err = GetSimpleText(a.reader, "Database URI", a.out); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Example queries (at least one; empty question to finish)")
	for {
		question, err := GetSimpleText(a.reader, "Example question", a.out)
		if err != nil {
			return err
		}
		if question == "" {
			break
		}
		query, err := GetSimpleText(a.reader, "Matching SQL", a.out)
		if err != nil {
			return err
		}
		in.ExampleQueries = append(in.ExampleQueries, api.ExampleQuery{Question: question, Query: query})
	}

	if in.IsPublic, err = GetYesNo(a.reader, "Make template public?", a.out, false); err != nil {
		return err
	}

	t, err := a.api.CreateTemplate(ctx, in)
	if err != nil {
		fmt.Fprintln(a.out, "Could not create template:", api.Message(err, "request failed"))
		return err
	}
	fmt.Fprintf(a.out, "Created template %d (%s)\n", t.ID, t.Name)
	return nil
}

func (a *App) EditTemplate(ctx context.Context, arg string) error {
	id, err := parseID(arg, "edittemplate <id>")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	current, err := a.api.GetTemplate(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load template:", api.Message(err, "request failed"))
		return err
	}

	fmt.Fprintf(a.out, "Editing template %d (%s); empty answers keep current values\n", current.ID, current.Name)

	var in api.TemplateUpdate
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Name [%s]", current.Name), a.out); err != nil {
		return err
	} else if v != "" {
		in.Name = &v
	}
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Description [%s]", current.Description), a.out); err != nil {
		return err
	} else if v != "" {
		in.Description = &v
	}
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Database URI [%s]", maskURI(current.DatabaseURI)), a.out); err != nil {
		return err
	} else if v != "" {
		in.DatabaseURI = &v
	}

	t, err := a.api.UpdateTemplate(ctx, id, in)
	if err != nil {
		fmt.Fprintln(a.out, "Could not update template:", api.Message(err, "request failed"))
		return err
	}
	fmt.Fprintf(a.out, "Updated template %d (%s)\n", t.ID, t.Name)
	return nil
}

func (a *App) DeleteTemplate(ctx context.Context, arg string) error {
	id, err := parseID(arg, "deltemplate <id>")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	confirmed, err := GetYesNo(a.reader, fmt.Sprintf("Delete template %d?", id), a.out, false)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.api.DeleteTemplate(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Could not delete template:", api.Message(err, "request failed"))
		return err
	}
	fmt.Fprintf(a.out, "Deleted template %d\n", id)
	return nil
}
