package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id int64, qty int, price, category string) api.Item {
	return api.Item{ID: id, Quantity: qty, UnitPrice: decimal.RequireFromString(price), Category: category}
}

func TestBuild_Summary(t *testing.T) {
	items := []api.Item{
		item(1, 10, "5", "Hardware"),
		item(2, 0, "120", "Tools"),
		item(3, 2, "10", "Hardware"),
		item(4, 1, "30", ""),
	}
	alerts := []api.AlertRecord{items[1]}

	r := Build(items, alerts, nil)

	assert.Equal(t, 4, r.Summary.TotalItems)
	assert.Equal(t, 1, r.Summary.LowStockItems)
	assert.Equal(t, 1, r.Summary.OutOfStockItems)
	assert.True(t, r.Summary.TotalValue.Equal(decimal.NewFromInt(100)), r.Summary.TotalValue.String())
	assert.InDelta(t, 75.0, r.Summary.StockHealthScore, 1e-9)
}

func TestBuild_EmptyInventory(t *testing.T) {
	r := Build(nil, nil, nil)

	assert.Equal(t, 100.0, r.Summary.StockHealthScore)
	assert.Empty(t, r.Categories)
	assert.Empty(t, r.TopAlerts)
	assert.Equal(t, 0, r.Performance.TotalOrders)
	assert.True(t, r.Performance.MonthlyValue.IsZero())
	require.Len(t, r.Recommendations, 1)
	assert.Equal(t, "strategy", r.Recommendations[0].Type)
}

func TestBuild_HealthScoreFloorsAtZero(t *testing.T) {
	items := []api.Item{item(1, 1, "1", "A")}
	alerts := []api.AlertRecord{items[0], items[0]}

	r := Build(items, alerts, nil)
	assert.Equal(t, 0.0, r.Summary.StockHealthScore)
}

func TestBuild_Categories(t *testing.T) {
	items := []api.Item{
		item(1, 1, "10", "Small"),
		item(2, 3, "10", "Big"),
		item(3, 2, "10", "Big"),
		item(4, 5, "0", "Free"),
	}

	r := Build(items, nil, nil)

	require.Len(t, r.Categories, 3)
	assert.Equal(t, "Big", r.Categories[0].Category)
	assert.Equal(t, 2, r.Categories[0].ItemCount)
	assert.InDelta(t, 50.0/60*100, r.Categories[0].Percentage, 1e-6)
	assert.Equal(t, "Small", r.Categories[1].Category)
	assert.Equal(t, "Free", r.Categories[2].Category)
	assert.Equal(t, 0.0, r.Categories[2].Percentage)
}

func TestBuild_Performance(t *testing.T) {
	tests := []struct {
		name  string
		stats *api.OrderStats
		want  Performance
	}{
		{
			name:  "no orders",
			stats: &api.OrderStats{MonthlyValue: decimal.NewFromInt(5000)},
			want:  Performance{MonthlyValue: decimal.NewFromInt(5000), Score: 5},
		},
		{
			name:  "rates",
			stats: &api.OrderStats{TotalOrders: 8, CompletedOrders: 6, PendingOrders: 2, MonthlyValue: decimal.NewFromInt(2000)},
			want:  Performance{TotalOrders: 8, CompletionRate: 75, PendingRate: 25, MonthlyValue: decimal.NewFromInt(2000), Score: 77},
		},
		{
			name:  "score capped",
			stats: &api.OrderStats{TotalOrders: 1, CompletedOrders: 1, MonthlyValue: decimal.NewFromInt(90000)},
			want:  Performance{TotalOrders: 1, CompletionRate: 100, MonthlyValue: decimal.NewFromInt(90000), Score: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(nil, nil, tt.stats).Performance
			assert.Equal(t, tt.want.TotalOrders, got.TotalOrders)
			assert.InDelta(t, tt.want.CompletionRate, got.CompletionRate, 1e-9)
			assert.InDelta(t, tt.want.PendingRate, got.PendingRate, 1e-9)
			assert.InDelta(t, tt.want.Score, got.Score, 1e-9)
			assert.True(t, tt.want.MonthlyValue.Equal(got.MonthlyValue))
		})
	}
}

func TestBuild_Recommendations(t *testing.T) {
	items := []api.Item{
		item(1, 1, "150", "A"),
		item(2, 1, "101", "B"),
		item(3, 1, "100", "C"),
	}
	alerts := []api.AlertRecord{items[0]}
	stats := &api.OrderStats{PendingOrders: 3, CompletedOrders: 1, TotalOrders: 4}

	recs := Build(items, alerts, stats).Recommendations

	var types, priorities []string
	for _, r := range recs {
		types = append(types, r.Type)
		priorities = append(priorities, r.Priority)
	}
	assert.Equal(t, []string{"inventory", "operations", "cost"}, types)
	assert.Equal(t, []string{"high", "medium", "low"}, priorities)
	assert.Contains(t, recs[0].Description, "1 items are below minimum stock")
	assert.Contains(t, recs[2].Description, "2 items have unit prices above $100")
}

func TestBuild_TopAlertsCapped(t *testing.T) {
	alerts := make([]api.AlertRecord, 8)
	for i := range alerts {
		alerts[i].ID = int64(i + 1)
	}

	r := Build(nil, alerts, nil)
	require.Len(t, r.TopAlerts, 5)
	assert.Equal(t, int64(5), r.TopAlerts[4].ID)
}

type fakeSources struct {
	alerts   []api.AlertRecord
	stats    *api.OrderStats
	alertErr error
	statsErr error
}

func (f fakeSources) Alerts(ctx context.Context) ([]api.AlertRecord, error) {
	return f.alerts, f.alertErr
}

func (f fakeSources) Stats(ctx context.Context) (*api.OrderStats, error) {
	return f.stats, f.statsErr
}

func TestLoad(t *testing.T) {
	items := []api.Item{item(1, 0, "2", "A")}
	src := fakeSources{alerts: []api.AlertRecord{items[0]}, stats: &api.OrderStats{TotalOrders: 2, CompletedOrders: 1}}

	r, err := Load(context.Background(), items, src, src)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Summary.LowStockItems)
	assert.InDelta(t, 50.0, r.Performance.CompletionRate, 1e-9)
}

func TestLoad_Error(t *testing.T) {
	boom := errors.New("stats down")
	src := fakeSources{statsErr: boom}

	r, err := Load(context.Background(), nil, src, src)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, r)
}
