package cli

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/client/router"
)

func (a *App) Chat(ctx context.Context, args []string) error {
	if !a.enter(router.AI) {
		return nil
	}

	query := strings.Join(args, " ")
	if query == "" {
		var err error
		if query, err = a.ask("Ask about inventory, orders or the supply chain"); err != nil {
			return err
		}
		if query == "" {
			return nil
		}
	}

	resp, err := a.client.AI.Chat(ctx, query)
	if err != nil {
		return a.fail(err, "Sorry, I could not process your request.")
	}
	a.println(resp.Text())
	return nil
}

func (a *App) Forecast(ctx context.Context, args []string) error {
	if !a.enter(router.AI) {
		return nil
	}
	id, err := parseID(args, "forecast <item-id> [days]")
	if err != nil {
		a.println("Please select an item to forecast:", err)
		return err
	}
	days := api.DefaultForecastDays
	if len(args) > 1 {
		if days, err = strconv.Atoi(args[1]); err != nil || days <= 0 {
			a.println("Days must be a positive number.")
			return nil
		}
	}

	fc, err := a.client.AI.Forecast(ctx, id, days)
	if err != nil {
		return a.fail(err, "Failed to generate forecast")
	}

	a.printf("Demand forecast for %s (%s, %s model), current stock %d\n", fc.ItemName, fc.ForecastPeriod, fc.ModelType, fc.CurrentStock)
	renderChart(a.out, fc.Forecast)
	for _, r := range fc.Recommendations {
		a.printf("[%s] %s\n", strings.ToUpper(r.Priority), r.Message)
	}
	return nil
}

func (a *App) Modes(ctx context.Context) error {
	if !a.enter(router.AI) {
		return nil
	}
	modes, err := a.client.AI.Modes(ctx)
	if err != nil {
		return a.fail(err, "Failed to fetch AI modes")
	}

	tw := newTable(a.out, "MODE", "NAME", "ENDPOINT", "DESCRIPTION")
	for _, key := range slices.Sorted(maps.Keys(modes)) {
		m := modes[key]
		row(tw, key, m.Name, m.Endpoint, m.Description)
	}
	return tw.Flush()
}
