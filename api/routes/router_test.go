package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev, Port: "0"},
		Session: config.SessionConfig{IdleTTL: time.Hour, SweepInterval: time.Minute, CookieName: "sf_session"},
		RateLimit: config.RateLimitConfig{
			CheckoutWindow:       time.Minute,
			CheckoutSessionLimit: 5,
			CheckoutIPLimit:      30,
		},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	recorder := metrics.NewStorefrontMetrics(registry)

	catalogSvc, err := catalog.NewService(catalog.DefaultProducts())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	cartSvc, err := cart.NewService(cart.ServiceParams{
		Sessions: cart.NewSessions(cfg.Session.IdleTTL),
		Catalog:  catalogSvc,
		Metrics:  recorder,
	})
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{Carts: cartSvc, Metrics: recorder})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	srv := httptest.NewServer(NewRouter(cfg, nil, nil, registry, catalogSvc, cartSvc, checkoutSvc))
	t.Cleanup(srv.Close)
	return srv
}

func send(t *testing.T, srv *httptest.Server, method, path, sessionID, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := send(t, srv, http.MethodGet, path, "", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.StatusCode)
		}
	}
}

func TestSessionCartRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := send(t, srv, http.MethodGet, "/api/v1/cart", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	sessionID := resp.Header.Get(middleware.SessionHeader)
	if sessionID == "" {
		t.Fatalf("expected a minted session id")
	}

	resp = send(t, srv, http.MethodPost, "/api/v1/cart/items", sessionID, `{"product_id":"2","quantity":2}`)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("add: expected 200 got %d: %s", resp.StatusCode, body)
	}

	resp = send(t, srv, http.MethodGet, "/api/v1/cart", sessionID, "")
	var envelope struct {
		Data struct {
			ItemCount int `json:"item_count"`
			Totals    struct {
				Total string `json:"total"`
			} `json:"totals"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if envelope.Data.ItemCount != 2 || envelope.Data.Totals.Total != "399.98" {
		t.Fatalf("unexpected cart %+v", envelope.Data)
	}

	other := send(t, srv, http.MethodGet, "/api/v1/cart", "", "")
	var otherEnvelope struct {
		Data struct {
			ItemCount int `json:"item_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(other.Body).Decode(&otherEnvelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if otherEnvelope.Data.ItemCount != 0 {
		t.Fatalf("carts must be isolated per session")
	}
}

func TestCatalogRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		path string
		want int
	}{
		{path: "/api/v1/products", want: http.StatusOK},
		{path: "/api/v1/products?category=Accessories&sort=rating", want: http.StatusOK},
		{path: "/api/v1/products/featured", want: http.StatusOK},
		{path: "/api/v1/products/1", want: http.StatusOK},
		{path: "/api/v1/products/404", want: http.StatusNotFound},
		{path: "/api/v1/categories", want: http.StatusOK},
		{path: "/api/v1/checkout/quote", want: http.StatusOK},
	} {
		resp := send(t, srv, http.MethodGet, tc.path, "", "")
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: expected %d got %d", tc.path, tc.want, resp.StatusCode)
		}
	}
}

func TestCheckoutWithoutRedisSkipsIdempotency(t *testing.T) {
	srv := newTestServer(t)
	sessionID := "6f1c8a52-1a8c-4f4e-9d7e-0a1b2c3d4e5f"

	resp := send(t, srv, http.MethodPost, "/api/v1/checkout", sessionID, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	send(t, srv, http.MethodPost, "/api/v1/cart/items", "", `{"product_id":"1","quantity":1}`)

	resp := send(t, srv, http.MethodGet, "/metrics", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "cart_mutations_total") {
		t.Fatalf("expected cart metrics in exposition")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/cart/items", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Session-Id")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
