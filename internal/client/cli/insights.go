package cli

import (
	"context"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/client/insights"
	"github.com/dmitrijs2005/scmclient/internal/client/router"
)

// insightsPageSize bounds the inventory sample the insights are built from.
const insightsPageSize = 100

func (a *App) Insights(ctx context.Context) error {
	if !a.enter(router.Insights) {
		return nil
	}

	page, err := a.client.Inventory.List(ctx, api.InventoryQuery{PerPage: insightsPageSize})
	if err != nil {
		return a.fail(err, "Failed to generate insights")
	}
	r, err := insights.Load(ctx, page.Items, a.client.Inventory, a.client.Orders)
	if err != nil {
		return a.fail(err, "Failed to generate insights")
	}

	s := r.Summary
	a.printf("Inventory health score: %.0f/100\n", s.StockHealthScore)
	a.printf("Items: %d  Low stock: %d  Out of stock: %d  Value: %s\n",
		s.TotalItems, s.LowStockItems, s.OutOfStockItems, money(s.TotalValue))

	if len(r.Categories) > 0 {
		tw := newTable(a.out, "CATEGORY", "ITEMS", "VALUE", "SHARE")
		for _, c := range r.Categories {
			row(tw, c.Category, c.ItemCount, money(c.TotalValue), formatPercent(c.Percentage))
		}
		tw.Flush()
	}

	p := r.Performance
	a.printf("Orders: %d  Completion: %s  Pending: %s  This month: %s  Score: %.0f/100\n",
		p.TotalOrders, formatPercent(p.CompletionRate), formatPercent(p.PendingRate), money(p.MonthlyValue), p.Score)

	for _, rec := range r.Recommendations {
		a.printf("[%s] %s: %s\n", rec.Priority, rec.Title, rec.Description)
	}
	return nil
}
