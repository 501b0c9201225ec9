package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter builds the API surface: inventory, donors, donations, uploads,
// and the static photo files.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/inventory", func(r chi.Router) {
		r.Get("/", app.InventoryList)
		r.Get("/stats", app.InventoryStats)
	})

	r.Route("/v1/items", func(r chi.Router) {
		r.Patch("/{id}", app.ItemUpdate)
		r.Delete("/{id}", app.ItemDelete)
	})

	r.Route("/v1/donors", func(r chi.Router) {
		r.Get("/", app.DonorsList)
		r.Post("/", app.DonorCreate)
		r.Get("/search", app.DonorsSearch)
		r.Patch("/{id}", app.DonorUpdate)
		r.Get("/{id}/donations", app.DonorDonations)
	})

	r.Post("/v1/donations", app.DonationsSubmit)
	r.Post("/v1/uploads/photos", app.PhotoUpload)

	if app.StaticDir != "" {
		fs := http.FileServer(http.Dir(app.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fs))
	}

	return r
}

// NewUnconfiguredRouter serves only the health endpoint while the database
// secret is missing; everything else answers 503 with a setup hint.
func NewUnconfiguredRouter(logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID, chimw.Recoverer, middleware.Logger(logger))

	r.Get("/v1/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_configured"})
	})

	unavailable := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"code":    "not_configured",
				"message": "Set DATABASE_URL to connect the service to its database",
			},
		})
	}
	r.NotFound(unavailable)
	r.MethodNotAllowed(unavailable)

	return r
}
