package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phonestore/backend/app"
	"github.com/phonestore/backend/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/health", deps.HealthHandler.HandleHealth)
	r.Get("/health/ready", deps.HealthHandler.HandleReadiness)

	// Hosted OAuth2 flow (browser clients)
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", deps.OAuthHandler.HandleLogin)
		r.Get("/callback", deps.OAuthHandler.HandleCallback)
		r.Get("/logout", deps.OAuthHandler.HandleLogout)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/google", deps.AuthHandler.HandleGoogleSignIn)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.ProductHandler.HandleListProducts)
			r.Get("/{id}", deps.ProductHandler.HandleGetProduct)
		})

		// Authenticated routes
		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/me", deps.UserHandler.HandleGetMe)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/", deps.OrderHandler.HandleListOrders)
			r.Post("/", deps.OrderHandler.HandleCreateOrder)
			r.Get("/{id}", deps.OrderHandler.HandleGetOrder)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Endpoint not found")
	})

	return r
}
