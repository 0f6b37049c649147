package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/client/config"
	"github.com/dmitrijs2005/scmclient/internal/client/resource"
	"github.com/dmitrijs2005/scmclient/internal/client/router"
	"github.com/dmitrijs2005/scmclient/internal/client/session"
	"github.com/dmitrijs2005/scmclient/internal/client/tokenstore"
	"github.com/dmitrijs2005/scmclient/internal/common"
	"github.com/dmitrijs2005/scmclient/internal/filex"
	"github.com/dmitrijs2005/scmclient/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	log    logging.Logger

	store      tokenstore.Store
	closeStore func() error
	client     *api.Client
	session    *session.Session
	router     *router.Router

	inventory  *resource.Inventory
	orders     *resource.Orders
	alerts     *resource.Value[[]api.AlertRecord]
	stats      *resource.Value[*api.OrderStats]
	categories *resource.Value[[]string]
	suppliers  *resource.Value[[]string]

	mu   sync.Mutex
	mode Mode
	// expired is set when a 401 ended a signed-in session during the
	// current command.
	expired bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session store named by the config and builds the app
// reading from stdin and writing to stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var (
		store      tokenstore.Store
		closeStore = func() error { return nil }
	)

	switch c.StoreKind {
	case config.StoreMemory:
		store = tokenstore.NewMemoryStore()
	case config.StoreSQLite, "":
		if _, err := filex.EnsureParentDir(c.StorePath); err != nil {
			return nil, err
		}
		s, err := tokenstore.Open(ctx, c.StorePath)
		if err != nil {
			log.Error(ctx, "error initializing session store", "path", c.StorePath, "err", err)
			return nil, err
		}
		store, closeStore = s, s.Close
	default:
		return nil, fmt.Errorf("unknown store kind %q", c.StoreKind)
	}

	a := newApp(c, store, log, os.Stdin, os.Stdout)
	a.closeStore = closeStore
	return a, nil
}

func newApp(c *config.Config, store tokenstore.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:     c,
		log:        log,
		store:      store,
		closeStore: func() error { return nil },
		router:     router.New(),
		reader:     bufio.NewReader(in),
		out:        out,
	}

	a.client = api.NewClient(c.APIBaseURL, store,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(log),
		api.WithUnauthorizedHandler(a.onUnauthorized),
	)
	a.session = session.New(store, a.client.Auth, log)

	a.inventory = resource.NewInventory(a.client, log)
	a.orders = resource.NewOrders(a.client, log)
	a.alerts = resource.NewAlerts(a.client, log)
	a.stats = resource.NewOrderStats(a.client, log)
	a.categories = resource.NewCategories(a.client, log)
	a.suppliers = resource.NewSuppliers(a.client, log)

	return a
}

// onUnauthorized is the forced logout: the token store is already clear,
// so the user is sent back to the login route.
func (a *App) onUnauthorized(ctx context.Context) {
	wasSignedIn := a.session.Phase() == session.PhaseAuthenticated
	a.router.Navigate(router.Login)
	if wasSignedIn {
		a.mu.Lock()
		a.expired = true
		a.mu.Unlock()
		a.println("Your session has expired. Please log in again.")
	}
	// settle the session now so later 401s of the same command stay quiet
	a.session.Check(ctx)
}

func (a *App) sessionExpired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expired
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run restores the session in the background, starts the connectivity
// watcher and blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to SCM-Core CLI (type 'help' for commands)")

	go func() {
		if err := a.session.Init(ctx); err != nil {
			a.log.Warn(ctx, "session not restored", "err", err)
		}
	}()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close tears down the session and containers and closes the store.
func (a *App) Close() {
	a.session.Teardown()
	a.inventory.Close()
	a.orders.Close()
	a.alerts.Close()
	a.stats.Close()
	a.categories.Close()
	a.suppliers.Close()
	if err := a.closeStore(); err != nil {
		a.log.Error(context.Background(), "error closing session store", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := a.client.Health.Check(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// connectivity mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// getStatus renders the prompt status: route, user and connectivity.
func (a *App) getStatus() string {
	st := a.session.State()
	s := a.router.Current()
	switch {
	case st.Loading:
		s += " (restoring"
	case st.User != nil:
		s += " (" + st.User.Username
	default:
		s += " (guest"
	}
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return s + ")"
}

// enter visits path through its guard and reports whether the command may
// run. Placeholders and redirects are reported to the user.
func (a *App) enter(path string) bool {
	a.mu.Lock()
	a.expired = false
	a.mu.Unlock()

	d := a.router.Visit(path, a.session.State())
	switch d.Outcome {
	case router.Placeholder:
		a.println("Restoring session...")
		return false
	case router.Redirect:
		if d.Target == router.Login {
			a.printf("Please log in first (redirected to %s).\n", d.Target)
		} else {
			a.printf("Already logged in (redirected to %s).\n", d.Target)
		}
		return false
	}
	return true
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// errText is the user-facing message of err. It is empty for the 401 that
// ended the session: the expiry notice and the redirect already said so.
func (a *App) errText(err error, fallback string) string {
	if errors.Is(err, common.ErrorUnauthorized) && a.sessionExpired() {
		return ""
	}
	return api.Message(err, fallback)
}

// fail prints the user-facing message of err and returns err.
func (a *App) fail(err error, fallback string) error {
	if msg := a.errText(err, fallback); msg != "" {
		a.println("Error:", msg)
	}
	return err
}

// failResult prints the message of a failed mutation.
func (a *App) failResult(msg string) {
	if a.sessionExpired() {
		return
	}
	a.println("Error:", msg)
}
