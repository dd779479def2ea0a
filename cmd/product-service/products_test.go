package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/domain"
	"github.com/jconover/k8s-microservices-platform/internal/ratelimiter"
	"github.com/jconover/k8s-microservices-platform/internal/service"
	"github.com/jconover/k8s-microservices-platform/internal/store/memory"
)

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	return true, 0, nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	return false, time.Minute, nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func newTestApp() *application {
	logger := zap.NewNop().Sugar()

	return &application{
		config: config{
			addr:        ":5000",
			rateLimiter: ratelimiter.Config{Enabled: false},
		},
		logger: logger,
		db:     stubPinger{},
		cache:  stubPinger{},
		productService: service.NewProductService(
			memory.NewProductRepository(),
			memory.NewProductCache(),
			logger,
		),
	}
}

func doRequest(mux http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func TestProductCRUDFlow(t *testing.T) {
	app := newTestApp()
	mux := app.mount()

	// create
	rec := doRequest(mux, http.MethodPost, "/api/products", []byte(`{"name":"Widget","price":9.99}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "Widget", created.Name)
	require.Equal(t, 9.99, created.Price)
	require.Equal(t, 0, created.StockQuantity)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	// fetch returns the same product
	rec = doRequest(mux, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, created.Name, fetched.Name)

	// partial update keeps unsupplied fields
	rec = doRequest(mux, http.MethodPut, "/api/products/1", []byte(`{"stock_quantity":5}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, 5, updated.StockQuantity)
	require.Equal(t, "Widget", updated.Name)

	// delete
	rec = doRequest(mux, http.MethodDelete, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())

	// gone
	rec = doRequest(mux, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductValidation(t *testing.T) {
	app := newTestApp()
	mux := app.mount()

	tests := []struct {
		name string
		body string
	}{
		{"missing price", `{"name":"Widget"}`},
		{"missing name", `{"price":9.99}`},
		{"negative price", `{"name":"Widget","price":-1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(mux, http.MethodPost, "/api/products", []byte(tc.body))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.JSONEq(t, `{"error":"Name and price are required"}`, rec.Body.String())
		})
	}
}

func TestListProductsNewestFirst(t *testing.T) {
	app := newTestApp()
	mux := app.mount()

	rec := doRequest(mux, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	doRequest(mux, http.MethodPost, "/api/products", []byte(`{"name":"First","price":1}`))
	doRequest(mux, http.MethodPost, "/api/products", []byte(`{"name":"Second","price":2}`))

	rec = doRequest(mux, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	require.Equal(t, "Second", products[0].Name)
}

func TestDeleteMissingProductReturnsNotFound(t *testing.T) {
	app := newTestApp()
	mux := app.mount()

	rec := doRequest(mux, http.MethodDelete, "/api/products/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
}

func TestHealthFailsWhenCacheUnreachable(t *testing.T) {
	app := newTestApp()
	app.cache = stubPinger{err: errors.New("connection refused")}
	mux := app.mount()

	rec := doRequest(mux, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "unhealthy", health.Status)
	require.Equal(t, "error", health.Services["cache"])
	require.Equal(t, "ok", health.Services["database"])
}

func TestReadinessOnlyNeedsDatabase(t *testing.T) {
	app := newTestApp()
	app.cache = stubPinger{err: errors.New("connection refused")}
	mux := app.mount()

	rec := doRequest(mux, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestRateLimitRejectsWhenExceeded(t *testing.T) {
	app := newTestApp()
	app.config.rateLimiter.Enabled = true
	app.limits = limiters{
		daily:  allowAllLimiter{},
		hourly: allowAllLimiter{},
		list:   denyLimiter{},
		create: allowAllLimiter{},
	}
	mux := app.mount()

	rec := doRequest(mux, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
