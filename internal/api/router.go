package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"github.com/sweetlabs/sweetshop-be/internal/api/handlers"
	"github.com/sweetlabs/sweetshop-be/internal/auth"
	"github.com/sweetlabs/sweetshop-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.TokenManager, userService services.UserServiceProvider, sweetService services.SweetServiceProvider, db *sqlx.DB) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Wide-open CORS, matching the shop frontend's deployment posture
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	sweetHandler := handlers.NewSweetHandler(sweetService)
	healthHandler := handlers.NewHealthHandler(db)

	// Diagnostics
	r.Get("/", healthHandler.Root)
	r.Get("/test-db", healthHandler.TestDB)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/sweets", func(r chi.Router) {
			// Public endpoints
			r.Get("/", sweetHandler.GetAll)
			r.Get("/search", sweetHandler.Search)

			// Authenticated endpoints
			r.Group(func(r chi.Router) {
				r.Use(tokens.Middleware(userService))

				r.Post("/", sweetHandler.Create)
				r.Put("/{id}", sweetHandler.Update)
				r.Post("/{id}/purchase", sweetHandler.Purchase)

				// Admin-only endpoints
				r.Group(func(r chi.Router) {
					r.Use(auth.AdminOnly)

					r.Delete("/{id}", sweetHandler.Delete)
					r.Post("/{id}/restock", sweetHandler.Restock)
				})
			})
		})
	})

	return r
}
