package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/google/uuid"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderCorrelationID  = "X-Correlation-ID"
	maxIdempotencyKey    = 128
)

// RequestMeta attaches the caller description used by idempotency and
// audit. An invalid or missing correlation id is replaced by a new one and
// echoed back.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corr, err := uuid.Parse(r.Header.Get(HeaderCorrelationID))
		if err != nil {
			corr = uuid.New()
		}
		w.Header().Set(HeaderCorrelationID, corr.String())

		key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
		if len(key) > maxIdempotencyKey {
			http.Error(w, "Idempotency-Key is too long", http.StatusBadRequest)
			return
		}

		req := operation.RequestFrom(r.Context())
		req.IdempotencyKey = key
		req.CorrelationID = corr
		req.ClientIP = ClientIP(r)
		req.UserAgent = r.UserAgent()

		ctx := operation.WithRequest(r.Context(), req)
		ctx = logger.ContextWith(ctx,
			logger.String("correlation_id", corr.String()),
			logger.String("client_ip", req.ClientIP),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP prefers the first X-Forwarded-For hop and falls back to the
// peer address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
