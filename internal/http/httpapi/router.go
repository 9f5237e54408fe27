package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"display-service/internal/http/handlers"
	"display-service/internal/middleware"
)

// NewRouter wires the middleware chain and the display routes. The country
// lookup feeds locale detection and may be nil.
func NewRouter(app *handlers.App, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	// Middlewares dasar
	r.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(app.Logger),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.Cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Locale", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute))
	r.Use(middleware.Locale(app.Cfg.DefaultLocale, lookup))

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/receipt", func(r chi.Router) {
		r.Get("/", app.ReceiptSnapshot)
		r.Get("/card", app.ReceiptCard)
		r.Post("/dismiss", app.ReceiptDismiss)
	})

	r.Route("/v1/receipts", func(r chi.Router) {
		r.Get("/", app.ReceiptsList)
		r.Get("/export", app.ReceiptsExport)
	})

	r.Get("/v1/ws", app.Live)

	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	return r
}
