package resource

import (
	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/logging"
)

type (
	Inventory = List[api.Item, api.InventoryQuery, api.ItemInput]
	Orders    = List[api.Order, api.OrderQuery, api.OrderInput]
)

// NewInventory binds a List to the inventory gateway.
func NewInventory(c *api.Client, log logging.Logger) *Inventory {
	return NewList(ListGateway[api.Item, api.InventoryQuery, api.ItemInput]{
		Fetch:  c.Inventory.List,
		Create: c.Inventory.Create,
		Update: c.Inventory.Update,
		Remove: c.Inventory.Delete,
	}, Messages{
		Fetch:  "Failed to fetch inventory",
		Create: "Failed to create item",
		Update: "Failed to update item",
		Remove: "Failed to delete item",
	}, log)
}

// NewOrders binds a List to the orders gateway. Remove cancels the order.
func NewOrders(c *api.Client, log logging.Logger) *Orders {
	return NewList(ListGateway[api.Order, api.OrderQuery, api.OrderInput]{
		Fetch:  c.Orders.List,
		Create: c.Orders.Create,
		Update: c.Orders.Update,
		Remove: c.Orders.Cancel,
	}, Messages{
		Fetch:  "Failed to fetch orders",
		Create: "Failed to create order",
		Update: "Failed to update order",
		Remove: "Failed to cancel order",
	}, log)
}

func NewAlerts(c *api.Client, log logging.Logger) *Value[[]api.AlertRecord] {
	return NewValue(c.Inventory.Alerts, "Failed to fetch alerts", log)
}

func NewCategories(c *api.Client, log logging.Logger) *Value[[]string] {
	return NewValue(c.Inventory.Categories, "Failed to fetch categories", log)
}

func NewOrderStats(c *api.Client, log logging.Logger) *Value[*api.OrderStats] {
	return NewValue(c.Orders.Stats, "Failed to fetch order stats", log)
}

func NewSuppliers(c *api.Client, log logging.Logger) *Value[[]string] {
	return NewValue(c.Orders.Suppliers, "Failed to fetch suppliers", log)
}
