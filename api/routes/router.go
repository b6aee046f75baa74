package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	backend controllers.Pinger,
	gatherer prometheus.Gatherer,
	cat *catalog.Catalog,
	sessions controllers.SessionSource,
	opts controllers.PricingOptions,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, backend))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/emi", controllers.EMICalculate(logg))
		r.Get("/products", controllers.ProductList(cat, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Visitor(logg))

			r.Get("/products/{productId}", controllers.ProductDetail(sessions, opts, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(sessions, opts, logg))
				r.Post("/", controllers.CartAdd(sessions, opts, logg))
				r.Delete("/", controllers.CartClear(sessions, opts, logg))
				r.Patch("/{productId}", controllers.CartUpdateQuantity(sessions, opts, logg))
				r.Delete("/{productId}", controllers.CartRemove(sessions, opts, logg))
				r.Post("/{productId}/save-for-later", controllers.CartSaveForLater(sessions, opts, logg))
			})
			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(sessions, logg))
				r.Post("/", controllers.WishlistAdd(sessions, logg))
				r.Delete("/", controllers.WishlistClear(sessions, logg))
				r.Delete("/{productId}", controllers.WishlistRemove(sessions, logg))
				r.Post("/{productId}/move-to-cart", controllers.WishlistMoveToCart(sessions, opts, logg))
			})
			r.Route("/saved", func(r chi.Router) {
				r.Get("/", controllers.SavedFetch(sessions, logg))
				r.Post("/", controllers.SavedAdd(sessions, opts, logg))
				r.Delete("/", controllers.SavedClear(sessions, logg))
				r.Delete("/{productId}", controllers.SavedRemove(sessions, logg))
				r.Post("/{productId}/move-to-cart", controllers.SavedMoveToCart(sessions, opts, logg))
			})
			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", controllers.AlertsFetch(sessions, logg))
				r.Post("/", controllers.AlertsCreate(sessions, logg))
				r.Delete("/", controllers.AlertsClear(sessions, logg))
				r.Delete("/{alertId}", controllers.AlertsRemove(sessions, logg))
				r.Delete("/products/{productId}", controllers.AlertsRemoveForProduct(sessions, logg))
			})
			r.Route("/recent", func(r chi.Router) {
				r.Get("/", controllers.RecentFetch(sessions, logg))
				r.Delete("/", controllers.RecentClear(sessions, logg))
			})
			r.Route("/location", func(r chi.Router) {
				r.Get("/", controllers.LocationFetch(sessions, logg))
				r.Put("/", controllers.LocationSet(sessions, logg))
				r.Delete("/", controllers.LocationClear(sessions, logg))
			})
			r.Get("/delivery/{pincode}", controllers.DeliveryCheck(sessions, opts, logg))
			r.Route("/theme", func(r chi.Router) {
				r.Get("/", controllers.ThemeFetch(sessions, logg))
				r.Put("/", controllers.ThemeSet(sessions, logg))
				r.Post("/toggle", controllers.ThemeToggle(sessions, logg))
			})
		})
	})

	return r
}
