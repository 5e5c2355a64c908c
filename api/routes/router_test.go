package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		Session: config.SessionConfig{
			Secret:     "router-secret",
			Issuer:     "storefront",
			TTL:        time.Hour,
			CookieName: "sf_session",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *cart.MemorySlots) {
	t.Helper()
	reg := prometheus.NewRegistry()
	slots := cart.NewMemorySlots()
	svc, err := cart.NewService(slots, logger.Nop(), cart.WithMetrics(metrics.NewCartMetrics(reg)))
	if err != nil {
		t.Fatalf("new cart service: %v", err)
	}
	return NewRouter(testConfig(), logger.Nop(), Deps{Cart: svc, Gatherer: reg}), slots
}

type cartBody struct {
	Data struct {
		Items []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		TotalCount int    `json:"total_count"`
		TotalPrice string `json:"total_price"`
	} `json:"data"`
}

func send(t *testing.T, h http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestCartSurvivesAcrossRequestsOfOneSession(t *testing.T) {
	h, _ := newTestRouter(t)

	first := send(t, h, http.MethodPost, "/api/v1/cart/items", `{"name":"Widget","price":"9.99"}`, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("add failed: %d %s", first.Code, first.Body.String())
	}
	cookies := first.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	send(t, h, http.MethodPost, "/api/v1/cart/items", `{"name":"Widget","price":"9.99"}`, cookies)
	resp := send(t, h, http.MethodGet, "/api/v1/cart", "", cookies)

	var body cartBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.TotalCount != 2 || body.Data.TotalPrice != "$19.98" {
		t.Fatalf("unexpected cart %+v", body.Data)
	}

	other := send(t, h, http.MethodGet, "/api/v1/cart", "", nil)
	var otherBody cartBody
	if err := json.NewDecoder(other.Body).Decode(&otherBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if otherBody.Data.TotalCount != 0 {
		t.Fatalf("a new session must start empty, got %+v", otherBody.Data)
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		if resp := send(t, h, http.MethodGet, path, "", nil); resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}

	send(t, h, http.MethodGet, "/api/v1/cart", "", nil)
	resp := send(t, h, http.MethodGet, "/metrics", "", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "cart_operations_total") {
		t.Fatalf("expected cart metrics to be exported, got %d", resp.Code)
	}
}

func TestCatalogDisabledReturnsNotFound(t *testing.T) {
	h, _ := newTestRouter(t)
	if resp := send(t, h, http.MethodGet, "/api/v1/products", "", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with catalog disabled, got %d", resp.Code)
	}
}

func TestFragmentRouteUsesSession(t *testing.T) {
	h, _ := newTestRouter(t)
	first := send(t, h, http.MethodPost, "/api/v1/cart/items", `{"name":"Gadget","price":"5"}`, nil)
	resp := send(t, h, http.MethodGet, "/cart/fragment", "", first.Result().Cookies())
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "$5.00") {
		t.Fatalf("unexpected fragment %d %s", resp.Code, resp.Body.String())
	}
}
