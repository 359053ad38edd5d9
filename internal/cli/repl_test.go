package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeExec records which commands the loop dispatched.
type fakeExec struct {
	calls    []string
	loggedIn bool

	// expireOn simulates the API layer tearing the session down while
	// the named command was running.
	expireOn string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.expireOn {
		f.loggedIn = false
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error    { return f.record("login") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Templates(ctx context.Context) error                  { return f.record("templates") }
func (f *fakeExec) ShowTemplate(ctx context.Context, arg string) error   { return f.record("template " + arg) }
func (f *fakeExec) NewTemplate(ctx context.Context) error                { return f.record("newtemplate") }
func (f *fakeExec) EditTemplate(ctx context.Context, arg string) error   { return f.record("edittemplate " + arg) }
func (f *fakeExec) DeleteTemplate(ctx context.Context, arg string) error { return f.record("deltemplate " + arg) }
func (f *fakeExec) Query(ctx context.Context, arg string) error          { return f.record("query " + arg) }
func (f *fakeExec) History(ctx context.Context, arg string) error        { return f.record("history " + arg) }
func (f *fakeExec) Stats(ctx context.Context) error                      { return f.record("stats") }
func (f *fakeExec) WhoAmI(ctx context.Context) error                     { return f.record("whoami") }
func (f *fakeExec) Settings(ctx context.Context) error                   { return f.record("settings") }
func (f *fakeExec) RefreshKey(ctx context.Context) error                 { return f.record("refreshkey") }
func (f *fakeExec) Plans(ctx context.Context) error                      { return f.record("plans") }
func (f *fakeExec) Subscription(ctx context.Context) error               { return f.record("subscription") }
func (f *fakeExec) Checkout(ctx context.Context, arg string) error       { return f.record("checkout " + arg) }
func (f *fakeExec) Portal(ctx context.Context) error                     { return f.record("portal") }
func (f *fakeExec) Invoices(ctx context.Context) error                   { return f.record("invoices") }

func runInput(f *fakeExec, input string) string {
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), f, func() string { return "(test)" }, scanner, &out)
	return out.String()
}

func TestREPL_Dispatch(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	out := runInput(f, "templates\ntemplate 3\nquery 5\nhistory 2\nstats\nwhoami\nexit\n")

	assert.Equal(t, []string{"templates", "template 3", "query 5", "history 2", "stats", "whoami"}, f.calls)
	assert.Contains(t, out, "Bye!")
}

func TestREPL_QueryAlias(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	runInput(f, "q 5\nexit\n")
	assert.Equal(t, []string{"query 5"}, f.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	f := &fakeExec{}
	out := runInput(f, "frobnicate\nexit\n")
	assert.Empty(t, f.calls)
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestREPL_HelpDependsOnState(t *testing.T) {
	out := runInput(&fakeExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, out, helpAnonymous)

	out = runInput(&fakeExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, out, "refreshkey")
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	out := runInput(f, "\n   \nstats\nexit\n")
	assert.Equal(t, []string{"stats"}, f.calls)
	assert.NotContains(t, out, "Unknown command")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	f := &fakeExec{}
	out := runInput(f, "plans\n")
	assert.Equal(t, []string{"plans"}, f.calls)
	assert.NotContains(t, out, "Bye!")
}

func TestREPL_SessionExpiredNotice(t *testing.T) {
	f := &fakeExec{loggedIn: true, expireOn: "query 5"}
	out := runInput(f, "query 5\nexit\n")
	assert.Contains(t, out, "Session expired, please log in again.")
}

func TestREPL_NoExpiryNoticeOnLogout(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	out := runInput(f, "logout\nexit\n")
	assert.NotContains(t, out, "Session expired")
}
