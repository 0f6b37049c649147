// Package cli provides the interactive supply-chain command-line client.
//
// It wires configuration, the local session store, the API client and an
// interactive REPL. Each command belongs to a route; the route's guard
// decides whether the command runs, shows a placeholder while the session
// is being restored, or redirects (to the login route when signed out, to
// the dashboard when a signed-in user asks for login or signup).
//
// Key features:
//   - Login / Signup / Logout with a session persisted across runs
//   - Inventory: list, search, create, edit, delete, low-stock alerts
//   - Orders: list, create, cancel, status changes, supplier list, stats
//   - AI tools: chat, demand forecast chart, insight dashboard
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
