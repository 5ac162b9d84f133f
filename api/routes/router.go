package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/ridegear-backend/api/controllers"
	"github.com/angelmondragon/ridegear-backend/api/middleware"
	"github.com/angelmondragon/ridegear-backend/internal/cart"
	"github.com/angelmondragon/ridegear-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/ridegear-backend/internal/checkout"
	"github.com/angelmondragon/ridegear-backend/pkg/config"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
	"github.com/angelmondragon/ridegear-backend/pkg/metrics"
	"github.com/angelmondragon/ridegear-backend/pkg/redis"
	"github.com/angelmondragon/ridegear-backend/pkg/types"
)

// NewRouter wires every HTTP route. idempotencyStore may be nil, in which case
// Idempotency-Key headers are ignored.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	idempotencyStore redis.IdempotencyStore,
	readiness map[string]controllers.Pinger,
	cat *catalog.Catalog,
	money types.MoneyFormatter,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	sessionClient controllers.SessionClient,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", controllers.AuthLogin(sessionClient))
		r.Get("/logout", controllers.AuthLogout(sessionClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Notifications())

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(cat, money, logg))
			r.Get("/products/{productId}", controllers.CatalogProduct(cat, money, logg))
			r.Get("/categories", controllers.CatalogCategories(cat))
			r.Get("/categories/{slug}/products", controllers.CatalogCategoryProducts(cat, money, logg))
			r.Get("/vehicles", controllers.CatalogVehicles(cat))
			r.Get("/collections", controllers.CatalogCollections(cat))
		})

		r.Get("/session", controllers.SessionCurrent(sessionClient))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Use(middleware.Idempotency(idempotencyStore, logg))

			// Flat routes so Idempotency sees the full pattern.
			r.Get("/cart", controllers.CartView(cartService, logg))
			r.Delete("/cart", controllers.CartClear(cartService, logg))
			r.Post("/cart/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/cart/items/{productId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/cart/items/{productId}", controllers.CartRemoveItem(cartService, logg))

			r.Post("/checkout", controllers.CheckoutBegin(checkoutService, logg))
			r.Get("/checkout", controllers.CheckoutStatus(checkoutService, logg))
		})
	})

	return r
}
