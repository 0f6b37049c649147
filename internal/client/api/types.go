package api

import (
	"github.com/shopspring/decimal"
)

// UserProfile is the authenticated user as the backend reports it.
type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

// DisplayName returns "First Last" when known, the username otherwise.
func (u *UserProfile) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	return u.Username
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *UserProfile `json:"user,omitempty"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    *UserProfile `json:"user,omitempty"`
}

// Pagination is the paging block of list responses.
type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page,omitempty"`
}

// Page is one page of a list resource.
type Page[T any] struct {
	Items []T
	Pagination
}

// Item is an inventory record. Timestamps are kept as the backend's
// ISO-8601 strings.
type Item struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	SKU           string          `json:"sku"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Category      string          `json:"category,omitempty"`
	Location      string          `json:"location,omitempty"`
	MinimumStock  int             `json:"minimum_stock"`
	SupplierID    *int64          `json:"supplier_id,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
	IsActive      bool            `json:"is_active"`
	LowStockAlert bool            `json:"low_stock_alert"`
}

// Value is quantity times unit price.
func (i Item) Value() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemInput is the create/update payload of an inventory record.
type ItemInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Category     string          `json:"category"`
	Location     string          `json:"location"`
	MinimumStock int             `json:"minimum_stock"`
	SupplierID   *int64          `json:"supplier_id,omitempty"`
}

// AlertRecord is an inventory row flagged below its minimum stock.
type AlertRecord = Item

// Order statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusOrdered   = "ordered"
	StatusReceived  = "received"
	StatusCancelled = "cancelled"
)

// OrderStatuses lists the statuses in workflow order.
var OrderStatuses = []string{StatusPending, StatusApproved, StatusOrdered, StatusReceived, StatusCancelled}

type OrderLine struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	InventoryItemID int64           `json:"inventory_item_id"`
	ItemName        string          `json:"item_name,omitempty"`
	ItemSKU         string          `json:"item_sku,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// Order is a purchase order.
type Order struct {
	ID               int64           `json:"id"`
	OrderNumber      string          `json:"order_number"`
	SupplierName     string          `json:"supplier_name"`
	SupplierContact  string          `json:"supplier_contact,omitempty"`
	Status           string          `json:"status"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	OrderDate        string          `json:"order_date,omitempty"`
	ExpectedDelivery string          `json:"expected_delivery,omitempty"`
	ActualDelivery   string          `json:"actual_delivery,omitempty"`
	CreatedBy        int64           `json:"created_by"`
	Items            []OrderLine     `json:"items,omitempty"`
}

// Cancellable reports whether the order may still be cancelled.
func (o Order) Cancellable() bool {
	return o.Status != StatusCancelled && o.Status != StatusReceived
}

type OrderLineInput struct {
	InventoryItemID int64           `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// OrderInput is the create/update payload of a purchase order. Empty
// fields are not sent, so an update may carry the status alone.
type OrderInput struct {
	SupplierName     string           `json:"supplier_name,omitempty"`
	SupplierContact  string           `json:"supplier_contact,omitempty"`
	Status           string           `json:"status,omitempty"`
	ExpectedDelivery string           `json:"expected_delivery,omitempty"`
	Items            []OrderLineInput `json:"items,omitempty"`
}

type OrderStats struct {
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	MonthlyValue    decimal.Decimal `json:"monthly_value"`
}

// ChatResponse is the assistant's answer.
type ChatResponse struct {
	Response         string `json:"response"`
	FallbackResponse string `json:"fallback_response,omitempty"`
	Model            string `json:"model,omitempty"`
	TokensUsed       int    `json:"tokens_used,omitempty"`
	ContextUsed      bool   `json:"context_used,omitempty"`
}

// Text returns the answer, or the fallback answer when the model failed.
func (r *ChatResponse) Text() string {
	if r.Response != "" {
		return r.Response
	}
	if r.FallbackResponse != "" {
		return r.FallbackResponse
	}
	return "Sorry, I could not process your request."
}

type ForecastPoint struct {
	Date            string  `json:"date"`
	PredictedDemand float64 `json:"predicted_demand"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// Forecast is a demand forecast for one inventory item.
type Forecast struct {
	ItemID          int64            `json:"item_id"`
	ItemName        string           `json:"item_name"`
	ForecastPeriod  string           `json:"forecast_period"`
	ModelType       string           `json:"model_type"`
	Forecast        []ForecastPoint  `json:"forecast"`
	CurrentStock    int              `json:"current_stock"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Mode describes one assistant capability.
type Mode struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Endpoint    string `json:"endpoint"`
}
