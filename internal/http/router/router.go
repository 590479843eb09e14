package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/keebstore/storefront/docs"
	"github.com/keebstore/storefront/internal/http/handlers"
	mw "github.com/keebstore/storefront/internal/http/middleware"
	"github.com/keebstore/storefront/internal/observability"
)

type Options struct {
	Logger        *zap.Logger
	SessionSecret []byte
	SessionTTL    time.Duration
	// RateLimit toggles the per-IP limiter on order posts and the API.
	RateLimit bool
}

func NewRouter(opts Options) http.Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	limited := func(r chi.Router) {
		if opts.RateLimit {
			r.Use(mw.RateLimit)
		}
	}

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/custom-build", handlers.CustomBuildHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(mw.Session(opts.SessionSecret, opts.SessionTTL))

		r.Get("/", handlers.HomeHandler)
		r.Get("/products", handlers.ProductsPageHandler)

		r.Route("/order", func(r chi.Router) {
			limited(r)
			r.Post("/open", handlers.OpenOrderHandler)
			r.Post("/quantity", handlers.UpdateQuantityHandler)
			r.Post("/close", handlers.CloseOrderHandler)
			r.Post("/submit", handlers.SubmitOrderHandler)
		})
	})

	r.Route("/api", func(r chi.Router) {
		limited(r)
		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Get("/catalog/summary", handlers.GetCatalogSummaryHandler)
		r.Post("/orders", handlers.CreateOrderHandler)
	})

	return r
}
