package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlagent/sqlagent-cli/internal/api"
)

func TestQuery_TabularResult(t *testing.T) {
	f := &fakeClient{queryResult: &api.QueryResult{
		SQL:    "SELECT name, active FROM users",
		Result: json.RawMessage(`[{"name":"ada","active":true},{"name":"bob","active":null}]`),
	}}
	app, out := newTestApp(f, "list users\n")

	require.NoError(t, app.Query(context.Background(), "5"))
	assert.Equal(t, int64(5), f.lastTemplateID)
	assert.Equal(t, "list users", f.lastQuestion)

	got := out.String()
	assert.Contains(t, got, "Generated SQL: SELECT name, active FROM users")
	assert.Contains(t, got, "NAME")
	assert.Contains(t, got, "Yes")
	assert.Contains(t, got, "NULL")
}

func TestQuery_OpaqueResult(t *testing.T) {
	f := &fakeClient{queryResult: &api.QueryResult{
		SQL:    "SELECT COUNT(*) FROM users",
		Result: json.RawMessage(`{"count":42}`),
	}}
	app, out := newTestApp(f, "how many users\n")

	require.NoError(t, app.Query(context.Background(), "5"))
	assert.Contains(t, out.String(), `"count": 42`)
}

func TestQuery_OutOfCredits(t *testing.T) {
	f := &fakeClient{err: &api.Error{Kind: api.KindAPI, Status: http.StatusPaymentRequired, Message: "No credits remaining"}}
	app, out := newTestApp(f, "anything\n")

	err := app.Query(context.Background(), "5")
	require.Error(t, err)
	assert.Contains(t, out.String(), "You have used all your credits")
}

func TestQuery_EmptyQuestion(t *testing.T) {
	f := &fakeClient{}
	app, out := newTestApp(f, "\n")

	require.NoError(t, app.Query(context.Background(), "5"))
	assert.Contains(t, out.String(), "Nothing to ask.")
	assert.Empty(t, f.lastQuestion)
}

func TestQuery_BadID(t *testing.T) {
	app, out := newTestApp(&fakeClient{}, "")
	err := app.Query(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, out.String(), "usage: query <templateID>")
}

func TestHistory_FiltersByTemplate(t *testing.T) {
	f := &fakeClient{history: []api.QueryRecord{
		{ID: 1, TemplateID: 5, Status: "success", Question: "q one", CreatedAt: time.Now()},
		{ID: 2, TemplateID: 6, Status: "success", Question: "q two", CreatedAt: time.Now()},
		{ID: 3, TemplateID: 5, Status: "error", Question: "q three", CreatedAt: time.Now()},
	}}
	app, out := newTestApp(f, "")

	require.NoError(t, app.History(context.Background(), "5"))
	got := out.String()
	assert.Contains(t, got, "q one")
	assert.NotContains(t, got, "q two")
	assert.Contains(t, got, "q three")
}

func TestHistory_Empty(t *testing.T) {
	app, out := newTestApp(&fakeClient{}, "")
	require.NoError(t, app.History(context.Background(), ""))
	assert.Contains(t, out.String(), "No queries yet.")
}

func TestStats_PartialFailure(t *testing.T) {
	// The aggregate call fails but the recent-query list still renders.
	f := &fakeClient{
		statsErr: &api.Error{Kind: api.KindTransport},
		detailed: []api.QueryRecord{{ID: 1, TemplateID: 5, Status: "success", Question: "q one", CreatedAt: time.Now()}},
	}
	app, out := newTestApp(f, "")

	_ = app.Stats(context.Background())
	got := out.String()
	assert.Contains(t, got, "q one")
}
