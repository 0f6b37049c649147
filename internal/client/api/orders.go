package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// OrdersService talks to /orders.
type OrdersService struct {
	client *Client
}

// OrderQuery filters the order list. Zero values are not sent.
type OrderQuery struct {
	Search   string
	Status   string
	Supplier string
	Page     int
}

func (q OrderQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Supplier != "" {
		v.Set("supplier", q.Supplier)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

type orderEnvelope struct {
	Order   *Order `json:"order"`
	Message string `json:"message,omitempty"`
}

func (e *orderEnvelope) record() (*Order, error) {
	if e.Order == nil {
		return nil, fmt.Errorf("%w: no order", ErrMissingData)
	}
	return e.Order, nil
}

func orderPath(id int64) string {
	return fmt.Sprintf("/orders/%d", id)
}

// List returns one page of orders. Older backends answer with a bare array;
// that is reported as a single page.
func (s *OrdersService) List(ctx context.Context, q OrderQuery) (*Page[Order], error) {
	var raw json.RawMessage
	if err := s.client.get(ctx, "/orders", q.Values(), &raw); err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var orders []Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return nil, fmt.Errorf("failed to parse orders: %w", err)
		}
		return &Page[Order]{
			Items:      orders,
			Pagination: Pagination{Total: len(orders), Pages: 1, CurrentPage: 1, PerPage: len(orders)},
		}, nil
	}

	var resp struct {
		Orders []Order `json:"orders"`
		Pagination
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse orders: %w", err)
	}
	return &Page[Order]{Items: resp.Orders, Pagination: resp.Pagination}, nil
}

func (s *OrdersService) Get(ctx context.Context, id int64) (*Order, error) {
	var resp orderEnvelope
	if err := s.client.get(ctx, orderPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.record()
}

func (s *OrdersService) Create(ctx context.Context, in OrderInput) (*Order, error) {
	var resp orderEnvelope
	if err := s.client.post(ctx, "/orders", in, &resp); err != nil {
		return nil, err
	}
	return resp.record()
}

func (s *OrdersService) Update(ctx context.Context, id int64, in OrderInput) (*Order, error) {
	var resp orderEnvelope
	if err := s.client.put(ctx, orderPath(id), in, &resp); err != nil {
		return nil, err
	}
	return resp.record()
}

// Cancel moves the order to the cancelled status.
func (s *OrdersService) Cancel(ctx context.Context, id int64) error {
	return s.client.delete(ctx, orderPath(id))
}

func (s *OrdersService) Suppliers(ctx context.Context) ([]string, error) {
	var resp struct {
		Suppliers []string `json:"suppliers"`
	}
	if err := s.client.get(ctx, "/orders/suppliers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suppliers, nil
}

func (s *OrdersService) Stats(ctx context.Context) (*OrderStats, error) {
	var resp OrderStats
	if err := s.client.get(ctx, "/orders/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
