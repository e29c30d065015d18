package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avelarde/catalog-backend/api/controllers"
	"github.com/avelarde/catalog-backend/api/middleware"
	"github.com/avelarde/catalog-backend/api/validators"
	products "github.com/avelarde/catalog-backend/internal/products"
	"github.com/avelarde/catalog-backend/pkg/config"
	"github.com/avelarde/catalog-backend/pkg/logger"
	"github.com/avelarde/catalog-backend/pkg/metrics"
)

// NewRouter wires the catalog API surface: product CRUD, the public asset
// root, health probes, and the metrics endpoint.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	metricsRegistry *prometheus.Registry,
	dbPinger controllers.Pinger,
	storagePinger controllers.Pinger,
	productService products.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbPinger,
			"storage":  storagePinger,
		}))
	})

	formOpts := validators.ProductFormOptions{MaxImageBytes: cfg.Catalog.MaxImageBytes()}

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Post("/", controllers.CreateProduct(productService, logg, formOpts))
		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", controllers.GetProduct(productService, logg))
			r.Put("/", controllers.UpdateProduct(productService, logg, formOpts))
			r.Patch("/", controllers.UpdateProduct(productService, logg, formOpts))
			r.Delete("/", controllers.DeleteProduct(productService, logg))
		})
	})

	// The image store root doubles as the public asset origin the UI loads
	// product images from.
	fileServer := http.StripPrefix("/storage/", http.FileServer(http.Dir(cfg.Storage.Root)))
	r.Get("/storage/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	return r
}
