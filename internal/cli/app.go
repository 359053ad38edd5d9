package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/config"
	"github.com/sqlagent/sqlagent-cli/internal/logging"
	"github.com/sqlagent/sqlagent-cli/internal/session"
)

// App ties the session manager, the API client, and the terminal
// together. Command handlers live in the other files of this package,
// one file per screen of the service.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Manager
	api     api.Client
	store   *session.SQLiteStore
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.New(os.Stderr, cfg.LogLevel)

	store, err := session.Open(ctx, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	mgr := session.NewManager(store, log)

	// The manager is both the credential source and the teardown target,
	// so the transport needs it before Bind can hand it the client.
	client := api.NewHTTPClient(cfg.BaseURL, mgr, mgr.Teardown, log, cfg.RequestTimeout)
	mgr.Bind(client)

	return &App{
		config:  cfg,
		log:     log,
		session: mgr,
		api:     client,
		store:   store,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the persisted session and enters the REPL. It blocks
// until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.Email)
	}

	fmt.Fprintln(a.out, "SQL Agent CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner, a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) status() string {
	if u := a.session.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return "(anonymous)"
}
