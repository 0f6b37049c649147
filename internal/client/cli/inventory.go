package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/client/forms"
	"github.com/dmitrijs2005/scmclient/internal/client/router"
)

// parseInventoryArgs reads "[page] [-low] [-cat=<category>] [search words]".
func parseInventoryArgs(args []string) api.InventoryQuery {
	var q api.InventoryQuery
	var search []string
	for i, arg := range args {
		switch {
		case i == 0 && isNumber(arg):
			q.Page, _ = strconv.Atoi(arg)
		case arg == "-low":
			q.LowStockOnly = true
		case strings.HasPrefix(arg, "-cat="):
			q.Category = strings.TrimPrefix(arg, "-cat=")
		default:
			search = append(search, arg)
		}
	}
	q.Search = strings.Join(search, " ")
	return q
}

func isNumber(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func (a *App) Inventory(ctx context.Context, args []string) error {
	if !a.enter(router.Inventory) {
		return nil
	}

	if err := a.inventory.Fetch(ctx, parseInventoryArgs(args)); err != nil {
		return a.fail(err, "Failed to fetch inventory")
	}
	a.printItems(a.inventory.Snapshot().Data)
	a.println(pageFooter(a.inventory.Snapshot().Pagination))
	return nil
}

func (a *App) printItems(items []api.Item) {
	if len(items) == 0 {
		a.println("No items found.")
		return
	}
	tw := newTable(a.out, "ID", "NAME", "SKU", "QTY", "MIN", "PRICE", "CATEGORY", "LOCATION", "")
	for _, it := range items {
		flag := ""
		if it.LowStockAlert || it.Quantity <= it.MinimumStock {
			flag = "LOW"
		}
		row(tw, it.ID, it.Name, it.SKU, it.Quantity, it.MinimumStock, money(it.UnitPrice), orDash(it.Category), orDash(it.Location), flag)
	}
	tw.Flush()
}

func (a *App) ShowItem(ctx context.Context, args []string) error {
	if !a.enter(router.Inventory) {
		return nil
	}
	id, err := parseID(args, "item <id>")
	if err != nil {
		a.println(err)
		return err
	}

	it, err := a.client.Inventory.Get(ctx, id)
	if err != nil {
		return a.fail(err, "Failed to fetch item")
	}

	tw := newTable(a.out, "FIELD", "VALUE")
	row(tw, "ID", it.ID)
	row(tw, "Name", it.Name)
	row(tw, "SKU", it.SKU)
	row(tw, "Description", orDash(it.Description))
	row(tw, "Quantity", it.Quantity)
	row(tw, "Minimum stock", it.MinimumStock)
	row(tw, "Unit price", money(it.UnitPrice))
	row(tw, "Stock value", money(it.Value()))
	row(tw, "Category", orDash(it.Category))
	row(tw, "Location", orDash(it.Location))
	row(tw, "Updated", orDash(it.UpdatedAt))
	return tw.Flush()
}

// askItem fills f from prompts, keeping current values on empty answers.
func (a *App) askItem(f *forms.ItemForm) error {
	var err error
	if f.Name, err = a.askDefault("Name", f.Name); err != nil {
		return err
	}
	if f.SKU, err = a.askDefault("SKU", f.SKU); err != nil {
		return err
	}
	if f.Description, err = a.askDefault("Description", f.Description); err != nil {
		return err
	}
	if f.Quantity, err = a.askInt("Quantity", f.Quantity); err != nil {
		return err
	}
	if f.UnitPrice, err = a.askDecimal("Unit price", f.UnitPrice); err != nil {
		return err
	}
	if f.Category, err = a.askDefault("Category", f.Category); err != nil {
		return err
	}
	if f.Location, err = a.askDefault("Location", f.Location); err != nil {
		return err
	}
	if f.MinimumStock, err = a.askInt("Minimum stock", f.MinimumStock); err != nil {
		return err
	}
	return f.Validate()
}

func (a *App) AddItem(ctx context.Context) error {
	if !a.enter(router.Inventory) {
		return nil
	}

	var f forms.ItemForm
	if err := a.askItem(&f); err != nil {
		a.println("Error:", err)
		return err
	}

	res := a.inventory.Create(ctx, f.Input())
	if !res.Success {
		a.failResult(res.Error)
		return nil
	}
	if res.Data == nil {
		a.println("Item created.")
		return nil
	}
	a.printf("Item #%d created.\n", res.Data.ID)
	return nil
}

func (a *App) EditItem(ctx context.Context, args []string) error {
	if !a.enter(router.Inventory) {
		return nil
	}
	id, err := parseID(args, "edititem <id>")
	if err != nil {
		a.println(err)
		return err
	}

	it, err := a.client.Inventory.Get(ctx, id)
	if err != nil {
		return a.fail(err, "Failed to fetch item")
	}

	f := forms.ItemFormFrom(*it)
	if err := a.askItem(&f); err != nil {
		a.println("Error:", err)
		return err
	}

	res := a.inventory.Update(ctx, id, f.Input())
	if !res.Success {
		a.failResult(res.Error)
		return nil
	}
	a.printf("Item #%d updated.\n", id)
	return nil
}

func (a *App) DeleteItem(ctx context.Context, args []string) error {
	if !a.enter(router.Inventory) {
		return nil
	}
	id, err := parseID(args, "delitem <id>")
	if err != nil {
		a.println(err)
		return err
	}
	if !a.confirm("Are you sure you want to delete this item?") {
		a.println("Cancelled.")
		return nil
	}

	res := a.inventory.Remove(ctx, id)
	if !res.Success {
		a.failResult(res.Error)
		return nil
	}
	a.printf("Item #%d deleted.\n", id)
	return nil
}

func (a *App) Alerts(ctx context.Context) error {
	if !a.enter(router.Inventory) {
		return nil
	}
	if err := a.alerts.Fetch(ctx); err != nil {
		return a.fail(err, "Failed to fetch alerts")
	}

	alerts := a.alerts.Snapshot().Data
	if len(alerts) == 0 {
		a.println("All items are sufficiently stocked.")
		return nil
	}
	a.printf("%d items below minimum stock:\n", len(alerts))
	tw := newTable(a.out, "ID", "NAME", "SKU", "QTY", "MIN")
	for _, it := range alerts {
		row(tw, it.ID, it.Name, it.SKU, it.Quantity, it.MinimumStock)
	}
	return tw.Flush()
}

func (a *App) Categories(ctx context.Context) error {
	if !a.enter(router.Inventory) {
		return nil
	}
	if err := a.categories.Fetch(ctx); err != nil {
		return a.fail(err, "Failed to fetch categories")
	}
	cats := a.categories.Snapshot().Data
	if len(cats) == 0 {
		a.println("No categories.")
		return nil
	}
	a.println(strings.Join(cats, ", "))
	return nil
}
