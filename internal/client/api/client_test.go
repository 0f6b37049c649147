package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/scmclient/internal/client/tokenstore"
	"github.com/dmitrijs2005/scmclient/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts a backend and a client bound to it with an empty
// in-memory token store.
func newTestServer(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *tokenstore.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := tokenstore.NewMemoryStore()
	return NewClient(server.URL, store, opts...), store
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient(t *testing.T) {
	c := NewClient("", tokenstore.NewMemoryStore())

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.NotNil(t, c.Auth)
	assert.NotNil(t, c.Inventory)
	assert.NotNil(t, c.Orders)
	assert.NotNil(t, c.AI)
	assert.NotNil(t, c.Health)
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{}
	c := NewClient("http://api.local/", tokenstore.NewMemoryStore(), WithHTTPClient(hc), WithTimeout(5*time.Second))

	assert.Equal(t, "http://api.local", c.BaseURL())
	assert.Same(t, hc, c.httpClient)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
}

func TestClient_Headers(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantBearer string
	}{
		{name: "with token", token: "abc.def.ghi", wantBearer: "Bearer abc.def.ghi"},
		{name: "without token", token: "", wantBearer: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			c, store := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				writeJSON(t, w, http.StatusOK, map[string]string{"status": "healthy"})
			})
			require.NoError(t, store.SetToken(context.Background(), tt.token))

			status, err := c.Health.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "healthy", status)

			assert.Equal(t, tt.wantBearer, got.Get("Authorization"))
			assert.Equal(t, "application/json", got.Get("Accept"))
			assert.Empty(t, got.Get("Content-Type"))
			_, err = uuid.Parse(got.Get("X-Request-ID"))
			assert.NoError(t, err)
		})
	}
}

func TestClient_JSONBody(t *testing.T) {
	var body map[string]any
	var contentType string
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &body))
		writeJSON(t, w, http.StatusOK, map[string]any{"access_token": "t"})
	})

	_, err := c.Auth.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]any{"username": "alice", "password": "secret"}, body)
}

func TestClient_Unauthorized(t *testing.T) {
	var calls atomic.Int32
	var tokenAtHandler string

	var store *tokenstore.MemoryStore
	c, store := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "Token has expired"})
	}, WithUnauthorizedHandler(func(ctx context.Context) {
		calls.Add(1)
		tokenAtHandler, _ = store.Token(ctx)
	}))

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "stale", []byte(`{"id":1}`)))

	_, err := c.Inventory.List(ctx, InventoryQuery{})
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, "Token has expired", apiErr.Message)

	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, tokenAtHandler, "store must be cleared before the handler runs")

	token, _ := store.Token(ctx)
	profile, _ := store.Profile(ctx)
	assert.Empty(t, token)
	assert.Nil(t, profile)

	_, err = c.Orders.Stats(ctx)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load(), "handler runs once per 401 response")
}

func TestClient_UnauthorizedWithTruncatedBody(t *testing.T) {
	var calls atomic.Int32
	c, store := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "64")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err`))
	}, WithUnauthorizedHandler(func(context.Context) { calls.Add(1) }))

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "stale", []byte(`{"id":1}`)))

	_, err := c.Inventory.List(ctx, InventoryQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, "Unauthorized", Message(err, "Failed"))

	assert.Equal(t, int32(1), calls.Load())
	token, _ := store.Token(ctx)
	profile, _ := store.Profile(ctx)
	assert.Empty(t, token)
	assert.Nil(t, profile)
}

func TestClient_TruncatedSuccessBodyIsAnError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "64")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ite`))
	}, WithUnauthorizedHandler(func(context.Context) { calls.Add(1) }))

	_, err := c.Inventory.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read response body")
	assert.Zero(t, calls.Load())
}

func TestClient_ForceLogoutIgnoresCancellation(t *testing.T) {
	var handlerErr error
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetToken(context.Background(), "stale"))

	c := NewClient("http://unused", store, WithUnauthorizedHandler(func(ctx context.Context) {
		handlerErr = ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.forceLogout(ctx)

	assert.NoError(t, handlerErr)
	token, _ := store.Token(context.Background())
	assert.Empty(t, token)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "error field", status: 400, body: `{"error":"SKU already exists"}`, wantMsg: "SKU already exists"},
		{name: "message field", status: 404, body: `{"message":"Item not found"}`, wantMsg: "Item not found"},
		{name: "error wins", status: 409, body: `{"error":"conflict","message":"other"}`, wantMsg: "conflict"},
		{name: "no body", status: 500, body: ``, wantMsg: "Internal Server Error"},
		{name: "html body", status: 502, body: `<html>bad gateway</html>`, wantMsg: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Inventory.Get(context.Background(), 7)
			require.Error(t, err)

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantMsg, Message(err, "fallback"))
		})
	}
}

func TestClient_NoResponse(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(url, tokenstore.NewMemoryStore())
	_, err := c.Health.Check(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResponse)
	assert.Equal(t, "no response from server", Message(err, "fallback"))
}

func TestClient_ContextCancelled(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Health.Check(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrNoResponse)
}

type brokenStore struct{}

func (brokenStore) Token(context.Context) (string, error) { return "", errors.New("disk gone") }
func (brokenStore) Clear(context.Context) error           { return nil }

func TestClient_TokenStoreError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, brokenStore{})
	_, err := c.Health.Check(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.Equal(t, int32(0), hits.Load())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(&Error{StatusCode: 500}, "fallback"))
	assert.Equal(t, "nope", Message(&Error{StatusCode: 403, Message: "nope"}, "fallback"))
}

func TestError_Predicates(t *testing.T) {
	assert.True(t, (&Error{StatusCode: 401}).IsUnauthorized())
	assert.True(t, (&Error{StatusCode: 404}).IsNotFound())
	assert.True(t, (&Error{StatusCode: 400}).IsValidationError())
	assert.True(t, (&Error{StatusCode: 422}).IsValidationError())
	assert.False(t, (&Error{StatusCode: 500}).IsValidationError())
	assert.Equal(t, "api error 400: bad", (&Error{StatusCode: 400, Message: "bad"}).Error())

	wrapped := fmt.Errorf("fetch: %w", &Error{StatusCode: 401})
	assert.ErrorIs(t, wrapped, common.ErrorUnauthorized)
	assert.NotErrorIs(t, wrapped, common.ErrorNotFound)
	assert.ErrorIs(t, &Error{StatusCode: 404}, common.ErrorNotFound)
	assert.NotErrorIs(t, &Error{StatusCode: 500}, common.ErrorUnauthorized)
}
