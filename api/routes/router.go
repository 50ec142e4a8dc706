package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adiwijaya/tokokita-backend/api/controllers"
	"github.com/adiwijaya/tokokita-backend/api/middleware"
	"github.com/adiwijaya/tokokita-backend/internal/catalog"
	checkoutsvc "github.com/adiwijaya/tokokita-backend/internal/checkout"
	"github.com/adiwijaya/tokokita-backend/internal/session"
	"github.com/adiwijaya/tokokita-backend/pkg/config"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
	"github.com/adiwijaya/tokokita-backend/pkg/metrics"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Session     *session.Session
	Checkout    checkoutsvc.Service
	Catalog     catalog.Service
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	StorePinger controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg,
			controllers.NamedPinger("store", deps.StorePinger),
		))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/categories", controllers.ProductCategories(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(deps.Session, logg))
			r.Delete("/", controllers.CartClear(deps.Session, logg))
			r.Post("/items", controllers.CartAddItem(deps.Session, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(deps.Session, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Session, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionList(deps.Session, logg))
			r.Get("/{id}", controllers.TransactionGet(deps.Session, logg))
			r.Delete("/{id}", controllers.TransactionDelete(deps.Session, logg))
		})
	})

	return r
}
