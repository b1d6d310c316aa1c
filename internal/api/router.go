package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/wizallet/wizallet-be/internal/api/handlers"
	"github.com/wizallet/wizallet-be/internal/auth"
	"github.com/wizallet/wizallet-be/internal/services"
)

// Credential endpoints get a small per-IP budget; everything behind the token
// guard is unlimited.
const (
	authRatePerSecond = 1
	authBurst         = 20
)

// NewRouter creates and configures a new Chi router.
func NewRouter(authenticator *auth.Authenticator, userService services.UserServiceProvider, transactionService services.TransactionServiceProvider, clientURL string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the SPA origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, authenticator)
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Liveness endpoints
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("WizAllet Server is running"))
	})
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
	})

	// Public credential endpoints
	limiter := NewRateLimiter(authRatePerSecond, authBurst)
	r.Route("/auth", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(authenticator.Middleware())

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionHandler.GetAll)
			r.Post("/", transactionHandler.Create)
			r.Get("/summary", transactionHandler.Summary)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", transactionHandler.Get)
				r.Patch("/", transactionHandler.Update)
				r.Delete("/", transactionHandler.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.GetAll)
			r.Get("/{id}", userHandler.Get)
		})
	})

	return r
}
