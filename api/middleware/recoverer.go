package middleware

import (
	"fmt"
	"net/http"

	"github.com/avelarde/catalog-backend/api/responses"
	pkgerrors "github.com/avelarde/catalog-backend/pkg/errors"
	"github.com/avelarde/catalog-backend/pkg/logger"
)

// Recoverer converts handler panics into logged 500 responses so one bad
// request cannot take down the server loop.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithField(ctx, "panic", rec)
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "request handler panicked"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
