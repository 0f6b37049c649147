package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Fetch(t *testing.T) {
	calls := 0
	v := NewValue(func(context.Context) (int, error) {
		calls++
		if calls == 2 {
			return 0, errors.New("down")
		}
		return calls * 10, nil
	}, "Failed to fetch count", nil)
	ctx := context.Background()

	require.NoError(t, v.Fetch(ctx))
	assert.Equal(t, ValueState[int]{Data: 10}, v.Snapshot())

	require.Error(t, v.Fetch(ctx))
	assert.Equal(t, ValueState[int]{Data: 10, Error: "Failed to fetch count"}, v.Snapshot())

	require.NoError(t, v.Fetch(ctx))
	assert.Equal(t, ValueState[int]{Data: 30}, v.Snapshot())
}

func TestValue_Superseded(t *testing.T) {
	first := make(chan struct{})
	release := make(chan struct{})
	n := 0
	v := NewValue(func(ctx context.Context) (string, error) {
		n++
		if n == 1 {
			close(first)
			<-release
			return "stale", nil
		}
		return "fresh", nil
	}, "x", nil)
	ctx := context.Background()

	slow := make(chan error, 1)
	go func() { slow <- v.Fetch(ctx) }()
	<-first

	require.NoError(t, v.Fetch(ctx))
	close(release)
	assert.ErrorIs(t, <-slow, ErrSuperseded)
	assert.Equal(t, "fresh", v.Snapshot().Data)
}

func TestValue_Close(t *testing.T) {
	v := NewValue(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, "x", nil)

	done := make(chan error, 1)
	go func() { done <- v.Fetch(context.Background()) }()
	require.Eventually(t, func() bool { return v.Snapshot().Loading }, time.Second, time.Millisecond)

	v.Close()
	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, v.Snapshot().Error)
	assert.ErrorIs(t, v.Fetch(context.Background()), ErrClosed)
}

func TestValueConstructors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/inventory/alerts":
			_, _ = w.Write([]byte(`{"alerts":[{"id":1,"name":"Bolt","quantity":1,"minimum_stock":5}],"count":1}`))
		case "/inventory/categories":
			_, _ = w.Write([]byte(`{"categories":["Hardware"]}`))
		case "/orders/stats":
			_, _ = w.Write([]byte(`{"total_orders":3,"pending_orders":1,"completed_orders":1,"monthly_value":10}`))
		case "/orders/suppliers":
			_, _ = w.Write([]byte(`{"suppliers":["Acme","Globex"]}`))
		}
	}))
	t.Cleanup(srv.Close)
	c := api.NewClient(srv.URL, tokenstore.NewMemoryStore())
	ctx := context.Background()

	alerts := NewAlerts(c, nil)
	require.NoError(t, alerts.Fetch(ctx))
	assert.Len(t, alerts.Snapshot().Data, 1)

	cats := NewCategories(c, nil)
	require.NoError(t, cats.Fetch(ctx))
	assert.Equal(t, []string{"Hardware"}, cats.Snapshot().Data)

	stats := NewOrderStats(c, nil)
	require.NoError(t, stats.Fetch(ctx))
	assert.Equal(t, 3, stats.Snapshot().Data.TotalOrders)

	suppliers := NewSuppliers(c, nil)
	require.NoError(t, suppliers.Fetch(ctx))
	assert.Equal(t, []string{"Acme", "Globex"}, suppliers.Snapshot().Data)

	orders := NewOrders(c, nil)
	defer orders.Close()
	assert.Equal(t, api.OrderQuery{}, orders.LastQuery())
}
