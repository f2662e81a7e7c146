// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"crowdfund-api/internal/api/handler"
	"crowdfund-api/internal/auth"
	"crowdfund-api/internal/metrics"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Accounts    *handler.AccountHandler
	Projects    *handler.ProjectHandler
	Investments *handler.InvestmentHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, verifier auth.TokenVerifier, allowedOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Cancel the request context after DefaultTimeout
	r.Use(metrics.InstrumentHandler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	requireAuth := auth.Middleware(verifier)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Accounts.Register)
		r.Post("/register/wallet", h.Accounts.RegisterWallet)
		r.Post("/login", h.Accounts.Login)
		r.Post("/login/wallet", h.Accounts.LoginWallet)

		r.Get("/projects", h.Projects.ListProjects)
		r.Get("/projects/{projectID}", h.Projects.GetProject)
		r.Get("/projects/founder/{founderID}", h.Projects.ListFounderProjects)
		r.Get("/projects/{projectID}/investments", h.Investments.ListProjectInvestments)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/profile", h.Accounts.Profile)

			r.Post("/projects", h.Projects.CreateProject)
			r.Put("/projects/{projectID}", h.Projects.UpdateProject)
			r.Delete("/projects/{projectID}", h.Projects.DeleteProject)

			r.Post("/projects/{projectID}/invest", h.Investments.Invest)
			r.Get("/investments", h.Investments.ListMyInvestments)
		})
	})

	logger.Debug("Routes registered", "allowed_origins", allowedOrigins)
	return r
}
