package middleware

import (
	"net/http"
	"time"

	"github.com/avelarde/catalog-backend/pkg/logger"
)

// Logging emits one entry when a request starts and one when it completes.
// The query string is logged too since search and page parameters are the
// interesting part of most catalog reads.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logg == nil {
				next.ServeHTTP(w, r)
				return
			}

			fields := map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			}
			if query := r.URL.RawQuery; query != "" {
				fields["query"] = query
			}
			ctx := logg.WithFields(r.Context(), fields)

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			logg.Info(ctx, "request.start")

			next.ServeHTTP(rec, r.WithContext(ctx))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			ctx = logg.WithFields(ctx, map[string]any{
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			logg.Info(ctx, "request.complete")
		})
	}
}
