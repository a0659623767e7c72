package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"recom/internal/app"
	"recom/internal/interaction/tracer"
	"recom/internal/platform/config"
)

// TestContext holds the in-process services and the state shared between steps.
type TestContext struct {
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte

	catalog      *httptest.Server
	interactions *httptest.Server
	apps         []*app.App

	// ids maps scenario aliases ("ada", "lamp") to generated ids.
	ids map[string]int64
}

// NewTestContext creates an empty test context; servers start in a step.
func NewTestContext() *TestContext {
	return &TestContext{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		ids:        make(map[string]int64),
	}
}

func (tc *TestContext) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func baseConfig() config.Server {
	return config.Server{
		Environment:    "e2e",
		RequestTimeout: 5 * time.Second,
		Existence:      config.Existence{Timeout: 2 * time.Second, Concurrent: true},
	}
}

func (tc *TestContext) newApp(cfg config.Server, services ...string) (*app.App, error) {
	a, err := app.New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), services, app.Options{Tracer: tracer.NewNoop()})
	if err != nil {
		return nil, err
	}
	tc.apps = append(tc.apps, a)
	return a, nil
}

// StartCatalog serves the product and user services from one in-process server.
func (tc *TestContext) StartCatalog() error {
	a, err := tc.newApp(baseConfig(), app.Product, app.User)
	if err != nil {
		return err
	}
	tc.catalog = httptest.NewServer(a.Handler)
	return nil
}

// StartInteractions (re)starts the interaction service against the given upstreams.
func (tc *TestContext) StartInteractions(userURL, productURL string) error {
	if tc.interactions != nil {
		tc.interactions.Close()
	}
	cfg := baseConfig()
	cfg.Upstreams = config.Upstreams{UserServiceURL: userURL, ProductServiceURL: productURL}
	a, err := tc.newApp(cfg, app.Interaction)
	if err != nil {
		return err
	}
	tc.interactions = httptest.NewServer(a.Handler)
	return nil
}

func (tc *TestContext) CatalogURL() string {
	return tc.catalog.URL
}

// Close stops every server started by the scenario.
func (tc *TestContext) Close() {
	if tc.interactions != nil {
		tc.interactions.Close()
	}
	if tc.catalog != nil {
		tc.catalog.Close()
	}
	for _, a := range tc.apps {
		a.Close(time.Second)
	}
}

func (tc *TestContext) Remember(alias string, id int64) {
	tc.ids[alias] = id
}

func (tc *TestContext) ID(alias string) (int64, error) {
	id, ok := tc.ids[alias]
	if !ok {
		return 0, fmt.Errorf("no record named %q", alias)
	}
	return id, nil
}

// POSTCatalog sends a JSON body to the product/user server.
func (tc *TestContext) POSTCatalog(path string, body any) error {
	return tc.do(http.MethodPost, tc.catalog.URL+path, body)
}

// POST sends a JSON body to the interaction service.
func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, tc.interactions.URL+path, body)
}

// GET reads from the interaction service.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, tc.interactions.URL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return tc.send(req)
}

func (tc *TestContext) do(method, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.send(req)
}

func (tc *TestContext) send(req *http.Request) error {
	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// GetResponseField extracts a top-level field from the JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	value, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}
	return value, nil
}

// ResponseContains checks if the response body contains a field or text.
func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err == nil {
		if _, ok := data[text]; ok {
			return true
		}
	}
	return false
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.LastResponseBody
}
