// Package api is the HTTP client of the supply-chain backend.
//
// A single Client owns the base URL, attaches the bearer credential from the
// token store to every request and reacts to 401 responses by wiping the
// session and calling the unauthorized handler (the forced logout). The
// resource gateways hang off the client:
//
//	c := api.NewClient("http://localhost:5000", store)
//	page, err := c.Inventory.List(ctx, api.InventoryQuery{Page: 2})
//
// Gateways are pure request builders. They never retry and never swallow
// errors: a non-2xx status comes back as *Error, a transport failure as an
// error wrapping ErrNoResponse.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/scmclient/internal/logging"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL matches the backend's development address.
	DefaultBaseURL = "http://localhost:5000"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	userAgent = "scmclient/1.0"
)

func init() {
	// the backend reads prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// TokenStore is the part of the session storage the client needs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// UnauthorizedHandler runs once for every 401 response, after the token
// store has been cleared.
type UnauthorizedHandler func(ctx context.Context)

// Client is the backend API client. It is safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	log            logging.Logger
	onUnauthorized UnauthorizedHandler

	Auth      *AuthService
	Inventory *InventoryService
	Orders    *OrdersService
	AI        *AIService
	Health    *HealthService
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithUnauthorizedHandler installs the forced-logout hook.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) {
		c.onUnauthorized = h
	}
}

// NewClient creates a client for the backend at baseURL reading the bearer
// credential from tokens.
func NewClient(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Inventory = &InventoryService{client: c}
	c.Orders = &OrdersService{client: c}
	c.AI = &AIService{client: c}
	c.Health = &HealthService{client: c}

	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
