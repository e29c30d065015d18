package controllers

import (
	"context"
	"net/http"

	"github.com/avelarde/catalog-backend/api/responses"
	"github.com/avelarde/catalog-backend/pkg/config"
	pkgerrors "github.com/avelarde/catalog-backend/pkg/errors"
	"github.com/avelarde/catalog-backend/pkg/logger"
)

// Pinger is the readiness probe each backing dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every named dependency answers its
// ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				failure := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready").
					WithDetails(map[string]string{"dependency": name})
				responses.WriteError(r.Context(), logg, w, failure)
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
