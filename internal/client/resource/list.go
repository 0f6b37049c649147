// Package resource keeps client-side copies of backend collections.
//
// A container owns its state and exposes a snapshot of it. Fetches are
// fenced: a newer fetch cancels the older one and only the latest response
// is applied, so a slow stale response can never overwrite a fresh one.
// After Close nothing is applied any more.
package resource

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/logging"
)

// ListState is a snapshot of a paginated collection.
type ListState[T any] struct {
	Data       []T
	Pagination api.Pagination
	Loading    bool
	Error      string
}

// MutationResult reports a create, update or remove. Error carries the
// user-facing message on failure.
type MutationResult[T any] struct {
	Success bool
	Data    *T
	Error   string
}

// ListGateway is what a List needs from the backend.
type ListGateway[T, Q, In any] struct {
	Fetch  func(ctx context.Context, q Q) (*api.Page[T], error)
	Create func(ctx context.Context, in In) (*T, error)
	Update func(ctx context.Context, id int64, in In) (*T, error)
	Remove func(ctx context.Context, id int64) error
}

// Messages are the fallback texts shown when an error carries none.
type Messages struct {
	Fetch  string
	Create string
	Update string
	Remove string
}

// List is a paginated collection with query Q and mutation payload In.
type List[T, Q, In any] struct {
	gw   ListGateway[T, Q, In]
	msgs Messages
	log  logging.Logger

	fence
	state     ListState[T]
	lastQuery Q
}

func NewList[T, Q, In any](gw ListGateway[T, Q, In], msgs Messages, log logging.Logger) *List[T, Q, In] {
	if log == nil {
		log = logging.Discard()
	}
	return &List[T, Q, In]{gw: gw, msgs: msgs, log: log}
}

// Snapshot returns a copy of the current state.
func (l *List[T, Q, In]) Snapshot() ListState[T] {
	var st ListState[T]
	l.read(func() {
		st = l.state
		st.Data = slices.Clone(l.state.Data)
	})
	return st
}

// LastQuery returns the query of the most recent fetch.
func (l *List[T, Q, In]) LastQuery() Q {
	var q Q
	l.read(func() { q = l.lastQuery })
	return q
}

// Fetch loads the page selected by q. On success data and pagination are
// replaced; on failure the error message is set and prior data is kept.
func (l *List[T, Q, In]) Fetch(ctx context.Context, q Q) error {
	ctx, seq, err := l.start(ctx, func() {
		l.lastQuery = q
		l.state.Loading = true
	})
	if err != nil {
		return err
	}

	page, err := l.gw.Fetch(ctx, q)

	applied := l.finish(seq, func() {
		l.state.Loading = false
		if err != nil {
			l.state.Error = api.Message(err, l.msgs.Fetch)
			return
		}
		l.state.Data = page.Items
		l.state.Pagination = page.Pagination
		l.state.Error = ""
	})
	if !applied {
		l.log.Debug(ctx, "dropped stale response", "seq", seq)
		if l.isClosed() {
			return ErrClosed
		}
		return ErrSuperseded
	}
	return err
}

// Create adds an element and re-fetches the last query on success.
func (l *List[T, Q, In]) Create(ctx context.Context, in In) MutationResult[T] {
	return l.mutate(ctx, l.msgs.Create, func() (*T, error) {
		return l.gw.Create(ctx, in)
	})
}

// Update changes element id and re-fetches the last query on success.
func (l *List[T, Q, In]) Update(ctx context.Context, id int64, in In) MutationResult[T] {
	return l.mutate(ctx, l.msgs.Update, func() (*T, error) {
		return l.gw.Update(ctx, id, in)
	})
}

// Remove deletes element id and re-fetches the last query on success.
func (l *List[T, Q, In]) Remove(ctx context.Context, id int64) MutationResult[T] {
	return l.mutate(ctx, l.msgs.Remove, func() (*T, error) {
		return nil, l.gw.Remove(ctx, id)
	})
}

func (l *List[T, Q, In]) mutate(ctx context.Context, fallback string, call func() (*T, error)) MutationResult[T] {
	if l.isClosed() {
		return MutationResult[T]{Error: ErrClosed.Error()}
	}

	data, err := call()
	if err != nil {
		msg := api.Message(err, fallback)
		l.update(func() { l.state.Error = msg })
		return MutationResult[T]{Error: msg}
	}

	if err := l.Fetch(ctx, l.LastQuery()); err != nil {
		l.log.Debug(ctx, "re-fetch after mutation failed", "err", err)
	}
	return MutationResult[T]{Success: true, Data: data}
}

// Close stops the container. In-flight fetches are cancelled and their
// results dropped.
func (l *List[T, Q, In]) Close() {
	l.close()
}
