package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"nodosml-similar/internal/config"
)

type Handlers struct {
	Recommend *RecommendHandler
	Movies    *MovieHandler
	Admin     *AdminHandler
}

// NewRouter arma el router con rutas públicas, admin (JWT) y swagger.
func NewRouter(cfg config.HTTPConfig, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger())
	r.Use(Recoverer())
	r.Use(CORS(cfg))

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(cfg))

		r.Get("/movies", h.Movies.ListMovies)
		r.Get("/recommend", h.Recommend.GetRecommendations)
		r.Get("/ws/recommend", h.Recommend.GetRecommendationsWS)
	})

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(cfg.JWTSecret))
		r.Use(AdminOnly())

		MountAdminRoutes(r, h.Admin)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
