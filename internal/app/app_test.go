package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recom/internal/interaction/tracer"
	"recom/internal/platform/config"
)

func testConfig() config.Server {
	return config.Server{
		Environment:    "test",
		RequestTimeout: 5 * time.Second,
		Existence:      config.Existence{Timeout: time.Second, Concurrent: true},
	}
}

func newApp(t *testing.T, cfg config.Server, services ...string) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), services, Options{Tracer: tracer.NewNoop()})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(time.Second) })
	return a
}

func post(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestParseServices(t *testing.T) {
	got, err := ParseServices("all")
	require.NoError(t, err)
	assert.Equal(t, []string{Product, User, Interaction}, got)

	got, err = ParseServices("user")
	require.NoError(t, err)
	assert.Equal(t, []string{User}, got)

	_, err = ParseServices("billing")
	assert.Error(t, err)
}

func TestInteractionServiceChecksRemoteReferences(t *testing.T) {
	catalogApp := newApp(t, testConfig(), Product, User)
	upstream := httptest.NewServer(catalogApp.Handler)
	defer upstream.Close()

	cfg := testConfig()
	cfg.Upstreams = config.Upstreams{
		UserServiceURL:    upstream.URL + "/users",
		ProductServiceURL: upstream.URL + "/products",
	}
	interactions := httptest.NewServer(newApp(t, cfg, Interaction).Handler)
	defer interactions.Close()

	status, user := post(t, upstream.URL+"/users", `{"name":"Ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, status)
	status, product := post(t, upstream.URL+"/products", `{"productName":"Lamp","category":"home","price":19.99}`)
	require.Equal(t, http.StatusCreated, status)

	status, created := post(t, interactions.URL+"/interactions",
		`{"userId":`+jsonNumber(user["userId"])+`,"productId":`+jsonNumber(product["productId"])+`,"interactionType":"view"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "view", created["interactionType"])

	status, rejected := post(t, interactions.URL+"/interactions", `{"userId":1,"productId":99,"interactionType":"view"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", rejected["error"])
	assert.Equal(t, "validation failed: product not found", rejected["error_description"])
}

func TestInteractionOnlyProcessDoesNotServeProducts(t *testing.T) {
	cfg := testConfig()
	cfg.Upstreams = config.Upstreams{UserServiceURL: "http://127.0.0.1:1/users", ProductServiceURL: "http://127.0.0.1:1/products"}
	srv := httptest.NewServer(newApp(t, cfg, Interaction).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAllServicesInOneProcessCheckTheirOwnListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Addr = ln.Addr().String()
	require.NoError(t, cfg.ResolveUpstreams(true))

	srv := &http.Server{Handler: newApp(t, cfg, Product, User, Interaction).Handler}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })
	base := "http://" + cfg.Addr

	status, user := post(t, base+"/users", `{"name":"Ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, status)
	status, product := post(t, base+"/products", `{"productName":"Lamp","category":"home","price":19.99}`)
	require.Equal(t, http.StatusCreated, status)

	status, created := post(t, base+"/interactions",
		`{"userId":`+jsonNumber(user["userId"])+`,"productId":`+jsonNumber(product["productId"])+`,"interactionType":"view"}`)
	require.Equal(t, http.StatusCreated, status, "%v", created)
	assert.Equal(t, "view", created["interactionType"])
}

func TestInteractionServiceRequiresUpstreams(t *testing.T) {
	_, err := New(context.Background(), testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), []string{Interaction}, Options{})
	assert.Error(t, err)
}

func jsonNumber(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
