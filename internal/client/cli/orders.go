package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/client/forms"
	"github.com/dmitrijs2005/scmclient/internal/client/router"
)

// parseOrderArgs reads "[page] [status] [search words]".
func parseOrderArgs(args []string) api.OrderQuery {
	var q api.OrderQuery
	var search []string
	for i, arg := range args {
		switch {
		case i == 0 && isNumber(arg):
			q.Page, _ = strconv.Atoi(arg)
		case q.Status == "" && slices.Contains(api.OrderStatuses, strings.ToLower(arg)):
			q.Status = strings.ToLower(arg)
		default:
			search = append(search, arg)
		}
	}
	q.Search = strings.Join(search, " ")
	return q
}

func (a *App) Orders(ctx context.Context, args []string) error {
	if !a.enter(router.Orders) {
		return nil
	}

	if err := a.orders.Fetch(ctx, parseOrderArgs(args)); err != nil {
		return a.fail(err, "Failed to fetch orders")
	}

	st := a.orders.Snapshot()
	if len(st.Data) == 0 {
		a.println("No orders found.")
		return nil
	}
	tw := newTable(a.out, "ID", "NUMBER", "SUPPLIER", "STATUS", "TOTAL", "ORDERED", "EXPECTED")
	for _, o := range st.Data {
		row(tw, o.ID, orDash(o.OrderNumber), o.SupplierName, o.Status, money(o.TotalAmount), orDash(o.OrderDate), orDash(o.ExpectedDelivery))
	}
	tw.Flush()
	a.println(pageFooter(st.Pagination))
	return nil
}

func (a *App) ShowOrder(ctx context.Context, args []string) error {
	if !a.enter(router.Orders) {
		return nil
	}
	id, err := parseID(args, "order <id>")
	if err != nil {
		a.println(err)
		return err
	}

	o, err := a.client.Orders.Get(ctx, id)
	if err != nil {
		return a.fail(err, "Failed to fetch order")
	}

	a.printf("Order %s (#%d) %s\n", orDash(o.OrderNumber), o.ID, o.Status)
	a.printf("Supplier: %s %s\n", o.SupplierName, orDash(o.SupplierContact))
	a.printf("Ordered: %s  Expected: %s  Delivered: %s\n", orDash(o.OrderDate), orDash(o.ExpectedDelivery), orDash(o.ActualDelivery))
	if len(o.Items) > 0 {
		tw := newTable(a.out, "ITEM", "SKU", "QTY", "PRICE", "TOTAL")
		for _, l := range o.Items {
			row(tw, orDash(l.ItemName), orDash(l.ItemSKU), l.Quantity, money(l.UnitPrice), money(l.TotalPrice))
		}
		tw.Flush()
	}
	a.printf("Total: %s\n", money(o.TotalAmount))
	return nil
}

// askOrderLines collects lines until an empty item id. The unit price
// defaults to the item's current price.
func (a *App) askOrderLines(ctx context.Context, f *forms.OrderForm) error {
	for {
		v, err := a.ask(fmt.Sprintf("Item %d: inventory item id (empty to finish)", len(f.Items)+1))
		if err != nil {
			return err
		}
		if v == "" {
			return nil
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			a.println("Item id must be a number.")
			continue
		}

		line := forms.OrderLineForm{InventoryItemID: id, Quantity: 1}
		if it, err := a.client.Inventory.Get(ctx, id); err == nil {
			a.printf("%s (%s), in stock: %d\n", it.Name, it.SKU, it.Quantity)
			line.UnitPrice = it.UnitPrice
		} else {
			if a.sessionExpired() {
				return err
			}
			a.println("Warning:", api.Message(err, "item not found"))
		}

		if line.Quantity, err = a.askInt("Quantity", line.Quantity); err != nil {
			return err
		}
		if line.UnitPrice, err = a.askDecimal("Unit price", line.UnitPrice); err != nil {
			return err
		}
		f.Items = append(f.Items, line)
		a.printf("Line total: %s, order total: %s\n", money(line.Total()), money(f.Total()))
	}
}

func (a *App) AddOrder(ctx context.Context) error {
	if !a.enter(router.Orders) {
		return nil
	}

	if err := a.suppliers.Fetch(ctx); err == nil {
		if s := a.suppliers.Snapshot().Data; len(s) > 0 {
			a.println("Known suppliers:", strings.Join(s, ", "))
		}
	}

	var f forms.OrderForm
	var err error
	if f.SupplierName, err = a.ask("Supplier name"); err != nil {
		return err
	}
	if f.SupplierContact, err = a.ask("Supplier contact"); err != nil {
		return err
	}
	if f.ExpectedDelivery, err = a.ask("Expected delivery (YYYY-MM-DD)"); err != nil {
		return err
	}
	if err := a.askOrderLines(ctx, &f); err != nil {
		return a.fail(err, err.Error())
	}
	if err := f.Validate(); err != nil {
		a.println("Error:", err)
		return err
	}

	res := a.orders.Create(ctx, f.Input())
	if !res.Success {
		a.failResult(res.Error)
		return nil
	}
	number := ""
	if res.Data != nil {
		number = res.Data.OrderNumber
	}
	a.printf("Order %s created, total %s.\n", orDash(number), money(f.Total()))
	return nil
}

func (a *App) CancelOrder(ctx context.Context, args []string) error {
	if !a.enter(router.Orders) {
		return nil
	}
	id, err := parseID(args, "cancelorder <id>")
	if err != nil {
		a.println(err)
		return err
	}
	if !a.confirm("Are you sure you want to cancel this order?") {
		a.println("Cancelled.")
		return nil
	}

	res := a.orders.Remove(ctx, id)
	if !res.Success {
		a.failResult(res.Error)
		return nil
	}
	a.printf("Order #%d cancelled.\n", id)
	return nil
}

func (a *App) SetOrderStatus(ctx context.Context, args []string) error {
	if !a.enter(router.Orders) {
		return nil
	}
	id, err := parseID(args, "orderstatus <id> <status>")
	if err != nil {
		a.println(err)
		return err
	}
	if len(args) < 2 || !slices.Contains(api.OrderStatuses, strings.ToLower(args[1])) {
		a.println("Status must be one of:", strings.Join(api.OrderStatuses, ", "))
		return nil
	}
	status := strings.ToLower(args[1])

	res := a.orders.Update(ctx, id, api.OrderInput{Status: status})
	if !res.Success {
		a.failResult(res.Error)
		return nil
	}
	a.printf("Order #%d is now %s.\n", id, status)
	return nil
}

func (a *App) Suppliers(ctx context.Context) error {
	if !a.enter(router.Orders) {
		return nil
	}
	if err := a.suppliers.Fetch(ctx); err != nil {
		return a.fail(err, "Failed to fetch suppliers")
	}
	s := a.suppliers.Snapshot().Data
	if len(s) == 0 {
		a.println("No suppliers yet.")
		return nil
	}
	a.println(strings.Join(s, "\n"))
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	if !a.enter(router.Orders) {
		return nil
	}
	if err := a.stats.Fetch(ctx); err != nil {
		return a.fail(err, "Failed to fetch order stats")
	}
	s := a.stats.Snapshot().Data
	if s == nil {
		return nil
	}
	tw := newTable(a.out, "METRIC", "VALUE")
	row(tw, "Total orders", s.TotalOrders)
	row(tw, "Pending", s.PendingOrders)
	row(tw, "Completed", s.CompletedOrders)
	row(tw, "This month", money(s.MonthlyValue))
	return tw.Flush()
}
