// Package router maps client routes to views and gates them on the session
// state.
package router

import (
	"fmt"
	"sync"

	"github.com/dmitrijs2005/scmclient/internal/client/session"
)

// Route paths.
const (
	Login     = "/"
	Signup    = "/signup"
	Dashboard = "/dashboard"
	Inventory = "/inventory"
	Orders    = "/orders"
	AI        = "/ai"
	Insights  = "/insights"

	// Landing is where authenticated users are sent from public-only routes.
	Landing = Dashboard
)

type Outcome int

const (
	Render Outcome = iota
	Redirect
	Placeholder
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Placeholder:
		return "placeholder"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Decision is the result of a guard. Target is set for Redirect only.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Guard decides what happens when a route is visited in a given state.
type Guard func(st session.State) Decision

// Protected renders for authenticated users and sends everyone else to the
// login route. While the session is restoring it shows a placeholder.
func Protected(st session.State) Decision {
	switch {
	case st.Loading:
		return Decision{Outcome: Placeholder}
	case st.Authenticated:
		return Decision{Outcome: Render}
	}
	return Decision{Outcome: Redirect, Target: Login}
}

// PublicOnly renders for anonymous users and sends authenticated ones to
// the landing route.
func PublicOnly(st session.State) Decision {
	switch {
	case st.Loading:
		return Decision{Outcome: Placeholder}
	case st.Authenticated:
		return Decision{Outcome: Redirect, Target: Landing}
	}
	return Decision{Outcome: Render}
}

// Navigator moves the client to another route.
type Navigator interface {
	Navigate(path string)
}

var guards = map[string]Guard{
	Login:     PublicOnly,
	Signup:    PublicOnly,
	Dashboard: Protected,
	Inventory: Protected,
	Orders:    Protected,
	AI:        Protected,
	Insights:  Protected,
}

// GuardFor returns the guard of path and whether the route exists.
func GuardFor(path string) (Guard, bool) {
	g, ok := guards[path]
	return g, ok
}

// Router tracks the current route. It is safe for concurrent use: the
// forced-logout handler navigates from the request goroutine.
type Router struct {
	mu      sync.Mutex
	current string
}

func New() *Router {
	return &Router{current: Login}
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate moves to path unconditionally. Unknown paths go to the login
// route.
func (r *Router) Navigate(path string) {
	if _, ok := guards[path]; !ok {
		path = Login
	}
	r.mu.Lock()
	r.current = path
	r.mu.Unlock()
}

// Visit applies the guard of path and follows redirects. The returned
// decision is the final one: Render or Placeholder for the route the router
// ends up on, or Redirect with the route it was sent to. A redirect chain
// never loops because the two guards redirect to routes of the other kind.
func (r *Router) Visit(path string, st session.State) Decision {
	guard, ok := guards[path]
	if !ok {
		path, guard = Login, PublicOnly
	}

	d := guard(st)
	if d.Outcome != Redirect {
		if d.Outcome == Render {
			r.Navigate(path)
		}
		return d
	}

	target := d.Target
	if next := guards[target](st); next.Outcome == Redirect {
		target = next.Target
	}
	r.Navigate(target)
	return Decision{Outcome: Redirect, Target: target}
}
