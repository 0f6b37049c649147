package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// InventoryService talks to /inventory.
type InventoryService struct {
	client *Client
}

// InventoryQuery filters the inventory list. Zero values are not sent.
type InventoryQuery struct {
	Search       string
	Category     string
	LowStockOnly bool
	Page         int
	PerPage      int
}

// Values encodes the query. low_stock_only is sent only when set: the
// backend treats any present value as true.
func (q InventoryQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.LowStockOnly {
		v.Set("low_stock_only", "true")
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return v
}

type itemEnvelope struct {
	Item    *Item  `json:"item"`
	Message string `json:"message,omitempty"`
}

func (e *itemEnvelope) record() (*Item, error) {
	if e.Item == nil {
		return nil, fmt.Errorf("%w: no item", ErrMissingData)
	}
	return e.Item, nil
}

func itemPath(id int64) string {
	return fmt.Sprintf("/inventory/%d", id)
}

// List returns one page of inventory items.
func (s *InventoryService) List(ctx context.Context, q InventoryQuery) (*Page[Item], error) {
	var resp struct {
		Items []Item `json:"items"`
		Pagination
	}
	if err := s.client.get(ctx, "/inventory", q.Values(), &resp); err != nil {
		return nil, err
	}
	return &Page[Item]{Items: resp.Items, Pagination: resp.Pagination}, nil
}

func (s *InventoryService) Get(ctx context.Context, id int64) (*Item, error) {
	var resp itemEnvelope
	if err := s.client.get(ctx, itemPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.record()
}

func (s *InventoryService) Create(ctx context.Context, in ItemInput) (*Item, error) {
	var resp itemEnvelope
	if err := s.client.post(ctx, "/inventory", in, &resp); err != nil {
		return nil, err
	}
	return resp.record()
}

func (s *InventoryService) Update(ctx context.Context, id int64, in ItemInput) (*Item, error) {
	var resp itemEnvelope
	if err := s.client.put(ctx, itemPath(id), in, &resp); err != nil {
		return nil, err
	}
	return resp.record()
}

// Delete removes an item. The backend deactivates it.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, itemPath(id))
}

// Alerts returns items at or below their minimum stock.
func (s *InventoryService) Alerts(ctx context.Context) ([]AlertRecord, error) {
	var resp struct {
		Alerts []AlertRecord `json:"alerts"`
		Count  int           `json:"count"`
	}
	if err := s.client.get(ctx, "/inventory/alerts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := s.client.get(ctx, "/inventory/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
