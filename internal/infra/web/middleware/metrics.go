package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// statusLabels holds the rendered codes 100-599 so the hot path does not
// allocate.
var statusLabels = func() (labels [600]string) {
	for i := 100; i < len(labels); i++ {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}()

func statusLabel(code int) string {
	if code >= 100 && code < len(statusLabels) {
		return statusLabels[code]
	}
	return strconv.Itoa(code)
}

// HTTPMetrics observes latency per route pattern, never per raw path, so
// account ids do not explode the label set.
func HTTPMetrics(m metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				route := "unmatched"
				if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				m.ObserveHTTPRequestDuration(r.Method, route, statusLabel(ww.Status()), time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
