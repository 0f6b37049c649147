// Package insights derives the dashboard's inventory and order insights
// from data already held by the client.
package insights

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	maxTopAlerts        = 5
	highValueThreshold  = 100
	minCategories       = 3
	monthlyValueDivisor = 1000
	fullScore           = 100.0
)

type Summary struct {
	TotalItems       int
	LowStockItems    int
	OutOfStockItems  int
	TotalValue       decimal.Decimal
	StockHealthScore float64
}

// CategoryShare is one category's part of the stock value.
type CategoryShare struct {
	Category   string
	ItemCount  int
	TotalValue decimal.Decimal
	Percentage float64
}

type Performance struct {
	TotalOrders    int
	CompletionRate float64
	PendingRate    float64
	MonthlyValue   decimal.Decimal
	Score          float64
}

type Recommendation struct {
	Type        string
	Priority    string
	Title       string
	Description string
	Action      string
	Impact      string
}

type Report struct {
	Summary         Summary
	Categories      []CategoryShare
	TopAlerts       []api.AlertRecord
	Performance     Performance
	Recommendations []Recommendation
}

// Build computes the report. stats may be nil.
func Build(items []api.Item, alerts []api.AlertRecord, stats *api.OrderStats) Report {
	if stats == nil {
		stats = &api.OrderStats{}
	}
	categories := categoryShares(items)
	return Report{
		Summary:         summarize(items, alerts),
		Categories:      categories,
		TopAlerts:       slices.Clone(alerts[:min(len(alerts), maxTopAlerts)]),
		Performance:     performance(stats),
		Recommendations: recommend(items, alerts, stats, len(categories)),
	}
}

func stockValue(items []api.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Value())
	}
	return total
}

func summarize(items []api.Item, alerts []api.AlertRecord) Summary {
	s := Summary{
		TotalItems:       len(items),
		LowStockItems:    len(alerts),
		TotalValue:       stockValue(items),
		StockHealthScore: fullScore,
	}
	for _, it := range items {
		if it.Quantity == 0 {
			s.OutOfStockItems++
		}
	}
	if s.TotalItems > 0 {
		s.StockHealthScore = max(0, fullScore-float64(s.LowStockItems)/float64(s.TotalItems)*100)
	}
	return s
}

// categoryShares groups items by non-empty category, largest value first.
func categoryShares(items []api.Item) []CategoryShare {
	total := stockValue(items)
	byName := map[string]*CategoryShare{}
	var order []string
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		cs, ok := byName[it.Category]
		if !ok {
			cs = &CategoryShare{Category: it.Category, TotalValue: decimal.Zero}
			byName[it.Category] = cs
			order = append(order, it.Category)
		}
		cs.ItemCount++
		cs.TotalValue = cs.TotalValue.Add(it.Value())
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, name := range order {
		cs := byName[name]
		if total.IsPositive() {
			cs.Percentage = cs.TotalValue.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		shares = append(shares, *cs)
	}
	slices.SortStableFunc(shares, func(a, b CategoryShare) int {
		return b.TotalValue.Cmp(a.TotalValue)
	})
	return shares
}

func performance(stats *api.OrderStats) Performance {
	p := Performance{TotalOrders: stats.TotalOrders, MonthlyValue: stats.MonthlyValue}
	if stats.TotalOrders > 0 {
		p.CompletionRate = float64(stats.CompletedOrders) / float64(stats.TotalOrders) * 100
		p.PendingRate = float64(stats.PendingOrders) / float64(stats.TotalOrders) * 100
	}
	p.Score = min(fullScore, p.CompletionRate+stats.MonthlyValue.InexactFloat64()/monthlyValueDivisor)
	return p
}

func recommend(items []api.Item, alerts []api.AlertRecord, stats *api.OrderStats, categories int) []Recommendation {
	var recs []Recommendation

	if len(alerts) > 0 {
		recs = append(recs, Recommendation{
			Type:        "inventory",
			Priority:    "high",
			Title:       "Address Low Stock Items",
			Description: fmt.Sprintf("%d items are below minimum stock levels. Consider reordering soon.", len(alerts)),
			Action:      "Review inventory alerts and create purchase orders",
			Impact:      "Prevent stockouts and maintain service levels",
		})
	}

	if stats.PendingOrders > stats.CompletedOrders {
		recs = append(recs, Recommendation{
			Type:        "operations",
			Priority:    "medium",
			Title:       "Optimize Order Processing",
			Description: "High number of pending orders detected. Consider streamlining approval process.",
			Action:      "Review order workflow and approval bottlenecks",
			Impact:      "Improve order fulfillment speed and customer satisfaction",
		})
	}

	threshold := decimal.NewFromInt(highValueThreshold)
	highValue := 0
	for _, it := range items {
		if it.UnitPrice.GreaterThan(threshold) {
			highValue++
		}
	}
	if highValue > 0 {
		recs = append(recs, Recommendation{
			Type:        "cost",
			Priority:    "low",
			Title:       "Review High-Value Items",
			Description: fmt.Sprintf("%d items have unit prices above $%d. Consider bulk purchasing or alternative suppliers.", highValue, highValueThreshold),
			Action:      "Negotiate better rates with suppliers for high-value items",
			Impact:      "Reduce procurement costs and improve margins",
		})
	}

	if categories < minCategories {
		recs = append(recs, Recommendation{
			Type:        "strategy",
			Priority:    "low",
			Title:       "Consider Product Diversification",
			Description: "Limited product categories detected. Diversification could reduce risk.",
			Action:      "Explore new product categories or market segments",
			Impact:      "Reduce dependency risk and explore new revenue streams",
		})
	}

	return recs
}

type AlertsSource interface {
	Alerts(ctx context.Context) ([]api.AlertRecord, error)
}

type StatsSource interface {
	Stats(ctx context.Context) (*api.OrderStats, error)
}

// Load fetches alerts and order stats concurrently and builds the report
// for items.
func Load(ctx context.Context, items []api.Item, alerts AlertsSource, stats StatsSource) (*Report, error) {
	var (
		a []api.AlertRecord
		s *api.OrderStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = alerts.Alerts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		s, err = stats.Stats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := Build(items, a, s)
	return &r, nil
}
