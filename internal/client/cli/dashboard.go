package cli

import (
	"context"

	"github.com/dmitrijs2005/scmclient/internal/client/router"
)

// Dashboard greets the user and shows low-stock and order counters.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.enter(router.Dashboard) {
		return nil
	}

	a.println("SCM-Core Dashboard")
	if u := a.session.State().User; u != nil {
		a.printf("Welcome to your Supply Chain Control Center, %s!\n", u.DisplayName())
	}

	if err := a.alerts.Fetch(ctx); err == nil {
		a.printf("Low stock items: %d\n", len(a.alerts.Snapshot().Data))
	} else if msg := a.errText(err, "Failed to fetch alerts"); msg != "" {
		a.println("Low stock items: unavailable,", msg)
	} else {
		return err
	}
	if err := a.stats.Fetch(ctx); err == nil {
		if s := a.stats.Snapshot().Data; s != nil {
			a.printf("Orders: %d total, %d pending, %d completed, %s this month\n",
				s.TotalOrders, s.PendingOrders, s.CompletedOrders, money(s.MonthlyValue))
		}
	} else if msg := a.errText(err, "Failed to fetch order stats"); msg != "" {
		a.println("Orders: unavailable,", msg)
	} else {
		return err
	}

	a.println("Sections: inventory, orders, chat/forecast/modes (AI tools), insights")
	return nil
}
