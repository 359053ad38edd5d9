// Package cli provides the interactive SQL Agent command-line client.
//
// It wires configuration, the local session store, the API access
// layer, and an interactive REPL. Typical flow: restore the persisted
// session, then execute user commands until exit.
//
// Key features:
//   - Login / Register / Logout with durable sessions
//   - Template management (list, show, create, edit, delete)
//   - Natural-language query execution with tabular or JSON results
//   - Query history and usage statistics
//   - Account settings, API-key rotation, and subscription billing
//
// The REPL is started via App.Run(ctx), which blocks until the user
// exits. See App and runREPL for details.
package cli
