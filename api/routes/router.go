package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	cartcontrollers "github.com/angelmondragon/storefront/api/controllers/cart"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Deps carries everything the HTTP surface needs. Catalog, DB and Redis are nil when the
// configuration leaves them out.
type Deps struct {
	Cart     cart.Service
	Catalog  catalog.Service
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["database"] = deps.DB
	}
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/api/v1/products", controllers.CatalogList(deps.Catalog, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(deps.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(deps.Cart, logg))
			r.Post("/items", cartcontrollers.CartAddItem(deps.Cart, logg))
			r.Post("/items/{itemId}/increment", cartcontrollers.CartIncrementItem(deps.Cart, logg))
			r.Post("/items/{itemId}/decrement", cartcontrollers.CartDecrementItem(deps.Cart, logg))
			r.Delete("/items/{itemId}", cartcontrollers.CartDeleteItem(deps.Cart, logg))
			r.Post("/rows/{index}/{action}", cartcontrollers.CartRowAction(deps.Cart, logg))
		})
		r.Get("/cart/fragment", cartcontrollers.CartFragment(deps.Cart, logg))
	})

	return r
}
