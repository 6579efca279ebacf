package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRequest(got *operation.Request) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = operation.RequestFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequestMeta(t *testing.T) {
	//Arrange
	var got operation.Request
	corr := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	req.RemoteAddr = "10.0.0.9:51234"
	req.Header.Set(HeaderIdempotencyKey, "  abc-123 ")
	req.Header.Set(HeaderCorrelationID, corr.String())
	req.Header.Set("User-Agent", "teller-ui/2.1")
	rec := httptest.NewRecorder()

	//Act
	RequestMeta(captureRequest(&got)).ServeHTTP(rec, req)

	//Assert
	assert.Equal(t, "abc-123", got.IdempotencyKey)
	assert.Equal(t, corr, got.CorrelationID)
	assert.Equal(t, "10.0.0.9", got.ClientIP)
	assert.Equal(t, "teller-ui/2.1", got.UserAgent)
	assert.Equal(t, corr.String(), rec.Header().Get(HeaderCorrelationID))
}

func TestRequestMeta_GeneratesCorrelationID(t *testing.T) {
	var got operation.Request
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, "not-a-uuid")
	rec := httptest.NewRecorder()

	RequestMeta(captureRequest(&got)).ServeHTTP(rec, req)

	assert.NotEqual(t, uuid.Nil, got.CorrelationID)
	assert.Equal(t, got.CorrelationID.String(), rec.Header().Get(HeaderCorrelationID))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		expect    string
	}{
		{name: "peer", remote: "192.0.2.4:80", expect: "192.0.2.4"},
		{name: "first forwarded hop", remote: "192.0.2.4:80", forwarded: "203.0.113.7, 10.0.0.1", expect: "203.0.113.7"},
		{name: "no port", remote: "pipe", expect: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.expect, ClientIP(req))
		})
	}
}

func TestActorAuth(t *testing.T) {
	auth := NewActorAuth("test-secret", logger.NewNop())
	valid, err := auth.Sign(Claims{
		UserID:           42,
		Role:             "supervisor",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	require.NoError(t, err)
	expired, err := auth.Sign(Claims{
		UserID:           42,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	require.NoError(t, err)
	noExpiry, err := auth.Sign(Claims{UserID: 42})
	require.NoError(t, err)
	anonymous, err := auth.Sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	require.NoError(t, err)
	foreign, err := NewActorAuth("other-secret", logger.NewNop()).Sign(Claims{
		UserID:           42,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, expectStatus: http.StatusNoContent},
		{name: "missing header", header: "", expectStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, expectStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, expectStatus: http.StatusUnauthorized},
		{name: "no expiry", header: "Bearer " + noExpiry, expectStatus: http.StatusUnauthorized},
		{name: "no operator id", header: "Bearer " + anonymous, expectStatus: http.StatusUnauthorized},
		{name: "other key", header: "Bearer " + foreign, expectStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got operation.Request
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth.Handler(captureRequest(&got)).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			if tt.expectStatus == http.StatusNoContent {
				require.NotNil(t, got.ActorUserID)
				assert.Equal(t, int64(42), *got.ActorUserID)
				assert.Equal(t, "supervisor", got.ActorRole)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := NewRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2})
	h := limiter.Handler(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.1:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.2:1000"
	otherRec := httptest.NewRecorder()
	h.ServeHTTP(otherRec, other)

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, http.StatusOK, otherRec.Code)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := NewRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, ClientTimeout: time.Minute})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.limiter("203.0.113.1")
	now = now.Add(2 * time.Minute)
	limiter.limiter("203.0.113.2")
	limiter.evictIdle()

	assert.Equal(t, 1, limiter.tracked())
}

func TestHTTPMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(reg, "test")
	r := chi.NewRouter()
	r.Use(HTTPMetrics(m))
	r.Get("/accounts/{id}", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/accounts/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/accounts/2", nil))

	n, err := testutil.GatherAndCount(reg, "app_http_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "404", statusLabel(404))
	assert.Equal(t, "999", statusLabel(999))
}
