package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avelarde/catalog-backend/pkg/logger"
)

// RequestIDHeader is echoed on every response so clients can quote the id
// when reporting a failed upload.
const RequestIDHeader = "X-Request-Id"

// RequestID tags each request with a correlation id, minting one when the
// client did not supply its own, and threads it through the context logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
