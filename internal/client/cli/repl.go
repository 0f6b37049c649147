package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error

	Inventory(ctx context.Context, args []string) error
	AddItem(ctx context.Context) error
	EditItem(ctx context.Context, args []string) error
	DeleteItem(ctx context.Context, args []string) error
	ShowItem(ctx context.Context, args []string) error
	Alerts(ctx context.Context) error
	Categories(ctx context.Context) error

	Orders(ctx context.Context, args []string) error
	AddOrder(ctx context.Context) error
	CancelOrder(ctx context.Context, args []string) error
	SetOrderStatus(ctx context.Context, args []string) error
	ShowOrder(ctx context.Context, args []string) error
	Suppliers(ctx context.Context) error
	Stats(ctx context.Context) error

	Chat(ctx context.Context, args []string) error
	Forecast(ctx context.Context, args []string) error
	Modes(ctx context.Context) error
	Insights(ctx context.Context) error
}

const (
	helpPublic = "Available commands: login, signup, help, exit"
	helpAuthed = `Available commands:
  dashboard, whoami, logout
  inventory [page] [-low] [-cat=<category>] [search], item <id>, additem, edititem <id>, delitem <id>, alerts, categories
  orders [page] [status] [search], order <id>, addorder, cancelorder <id>, orderstatus <id> <status>, suppliers, stats
  chat <question>, forecast <item-id> [days], modes, insights
  help, exit`
)

// runREPL starts a simple read–eval–print loop for the supply-chain CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
// The prompt shows the current route, user and connectivity (statusFn).
// Errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("scm %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpAuthed)
			} else {
				printlnFn(helpPublic)
			}

		case "login":
			_ = a.Login(ctx)
		case "signup", "register":
			_ = a.Signup(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "dashboard":
			_ = a.Dashboard(ctx)

		case "inventory", "inv":
			_ = a.Inventory(ctx, args)
		case "item":
			_ = a.ShowItem(ctx, args)
		case "additem":
			_ = a.AddItem(ctx)
		case "edititem":
			_ = a.EditItem(ctx, args)
		case "delitem":
			_ = a.DeleteItem(ctx, args)
		case "alerts":
			_ = a.Alerts(ctx)
		case "categories":
			_ = a.Categories(ctx)

		case "orders":
			_ = a.Orders(ctx, args)
		case "order":
			_ = a.ShowOrder(ctx, args)
		case "addorder":
			_ = a.AddOrder(ctx)
		case "cancelorder":
			_ = a.CancelOrder(ctx, args)
		case "orderstatus":
			_ = a.SetOrderStatus(ctx, args)
		case "suppliers":
			_ = a.Suppliers(ctx)
		case "stats":
			_ = a.Stats(ctx)

		case "chat":
			_ = a.Chat(ctx, args)
		case "forecast":
			_ = a.Forecast(ctx, args)
		case "modes":
			_ = a.Modes(ctx)
		case "insights":
			_ = a.Insights(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
