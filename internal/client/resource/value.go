package resource

import (
	"context"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/logging"
)

// ValueState is a snapshot of a single-value resource.
type ValueState[T any] struct {
	Data    T
	Loading bool
	Error   string
}

// Value is a fenced single-value resource such as alerts or order stats.
type Value[T any] struct {
	fetch    func(ctx context.Context) (T, error)
	fallback string
	log      logging.Logger

	fence
	state ValueState[T]
}

func NewValue[T any](fetch func(ctx context.Context) (T, error), fallback string, log logging.Logger) *Value[T] {
	if log == nil {
		log = logging.Discard()
	}
	return &Value[T]{fetch: fetch, fallback: fallback, log: log}
}

func (v *Value[T]) Snapshot() ValueState[T] {
	var st ValueState[T]
	v.read(func() { st = v.state })
	return st
}

// Fetch reloads the value. On failure the previous value is kept.
func (v *Value[T]) Fetch(ctx context.Context) error {
	ctx, seq, err := v.start(ctx, func() { v.state.Loading = true })
	if err != nil {
		return err
	}

	data, err := v.fetch(ctx)

	applied := v.finish(seq, func() {
		v.state.Loading = false
		if err != nil {
			v.state.Error = api.Message(err, v.fallback)
			return
		}
		v.state.Data = data
		v.state.Error = ""
	})
	if !applied {
		v.log.Debug(ctx, "dropped stale response", "seq", seq)
		if v.isClosed() {
			return ErrClosed
		}
		return ErrSuperseded
	}
	return err
}

func (v *Value[T]) Close() {
	v.close()
}
