package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Env: "test", CORSOrigins: []string{"http://localhost:3000"}},
		Storage: config.StorageConfig{Backend: config.StorageBackendMemory},
	}
	cat, err := catalog.Load("")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m, err := session.NewManager(session.Deps{
		Catalog: cat,
		Backend: blobstore.NewMemory(),
		Metrics: metrics.NewStoreMetrics(reg),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	opts := controllers.PricingOptions{TaxRate: pricing.DefaultTaxRate, Now: time.Now}
	return NewRouter(cfg, logger.Nop(), stubPinger{}, reg, cat, m, opts)
}

func do(router http.Handler, method, target, visitorID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if visitorID != "" {
		req.Header.Set(middleware.VisitorIDHeader, visitorID)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := do(router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, resp.Code, path)
		assert.Empty(t, resp.Header().Get(middleware.VisitorIDHeader), path)
	}
}

func TestVisitorRoutesIssueID(t *testing.T) {
	router := newTestRouter(t)

	resp := do(router, http.MethodGet, "/api/v1/cart", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get(middleware.VisitorIDHeader))
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}

func TestCartStatePersistsAcrossRequests(t *testing.T) {
	router := newTestRouter(t)

	resp := do(router, http.MethodPost, "/api/v1/cart", "shopper-1", `{"productId":"p-1001","quantity":2}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(router, http.MethodPatch, "/api/v1/cart/p-1001", "shopper-1", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(router, http.MethodGet, "/api/v1/cart", "shopper-1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data struct {
			Totals pricing.Totals `json:"totals"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, int64(89970), envelope.Data.Totals.Subtotal)
	assert.Equal(t, 3, envelope.Data.Totals.Units)

	resp = do(router, http.MethodGet, "/api/v1/cart", "shopper-2", "")
	require.Equal(t, http.StatusOK, resp.Code)
	envelope.Data.Totals = pricing.Totals{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Zero(t, envelope.Data.Totals.Subtotal)
}

func TestMalformedVisitorRejected(t *testing.T) {
	router := newTestRouter(t)
	resp := do(router, http.MethodGet, "/api/v1/wishlist", "bad:id", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProductRoutes(t *testing.T) {
	router := newTestRouter(t)

	resp := do(router, http.MethodGet, "/api/v1/products?sale=true&sort=price_high", "", "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(router, http.MethodGet, "/api/v1/products/p-2001", "viewer", "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(router, http.MethodGet, "/api/v1/recent", "viewer", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data struct {
			Entries []struct {
				ID string `json:"id"`
			} `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Entries, 1)
	assert.Equal(t, "p-2001", envelope.Data.Entries[0].ID)
}

func TestMetricsEndpointExposesStoreCounters(t *testing.T) {
	router := newTestRouter(t)

	resp := do(router, http.MethodPut, "/api/v1/theme", "themer", `{"theme":"light"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(router, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "store_mutations_total")
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, "http://localhost:3000", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)
	resp := do(router, http.MethodGet, "/api/v1/orders", "", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
