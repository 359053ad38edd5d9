package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Templates(ctx context.Context) error
	ShowTemplate(ctx context.Context, arg string) error
	NewTemplate(ctx context.Context) error
	EditTemplate(ctx context.Context, arg string) error
	DeleteTemplate(ctx context.Context, arg string) error
	Query(ctx context.Context, arg string) error
	History(ctx context.Context, arg string) error
	Stats(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Settings(ctx context.Context) error
	RefreshKey(ctx context.Context) error
	Plans(ctx context.Context) error
	Subscription(ctx context.Context) error
	Checkout(ctx context.Context, arg string) error
	Portal(ctx context.Context) error
	Invoices(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, plans, exit"
	helpLoggedIn  = "Available commands: templates, template <id>, newtemplate, edittemplate <id>, deltemplate <id>,\n" +
		"  query <templateID>, history [templateID], stats, whoami, settings, refreshkey,\n" +
		"  subscription, plans, checkout <priceID>, portal, invoices, logout, exit"
)

// runREPL starts a read–eval–print loop for the SQL Agent CLI.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on a. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
//
// A command that starts authenticated and ends anonymous without the
// user asking to log out means the backend rejected the credential and
// the API layer tore the session down; the loop tells the user once.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "sql %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		wasLoggedIn := a.isLoggedIn()

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "templates":
			_ = a.Templates(ctx)
		case "template":
			_ = a.ShowTemplate(ctx, arg)
		case "newtemplate":
			_ = a.NewTemplate(ctx)
		case "edittemplate":
			_ = a.EditTemplate(ctx, arg)
		case "deltemplate":
			_ = a.DeleteTemplate(ctx, arg)

		case "query", "q":
			_ = a.Query(ctx, arg)
		case "history":
			_ = a.History(ctx, arg)
		case "stats":
			_ = a.Stats(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)
		case "settings":
			_ = a.Settings(ctx)
		case "refreshkey":
			_ = a.RefreshKey(ctx)

		case "plans":
			_ = a.Plans(ctx)
		case "subscription":
			_ = a.Subscription(ctx)
		case "checkout":
			_ = a.Checkout(ctx, arg)
		case "portal":
			_ = a.Portal(ctx)
		case "invoices":
			_ = a.Invoices(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if wasLoggedIn && !a.isLoggedIn() && cmd != "logout" {
			fmt.Fprintln(out, "Session expired, please log in again.")
		}
	}
}
