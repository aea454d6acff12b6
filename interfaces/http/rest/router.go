package rest

import (
	"net/http"

	"photostack-backend/infrastructure/di"
	"photostack-backend/interfaces/http/rest/handlers"
	"photostack-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	stacks  *handlers.StackHandler
	uploads *handlers.UploadHandler
	logger  *zap.Logger
}

// NewRouter creates a new router instance from the wired container
func NewRouter(container *di.Container) *Router {
	return &Router{
		stacks:  handlers.NewStackHandler(container.StackReader, container.StackWriter, container.Logger),
		uploads: handlers.NewUploadHandler(container.UploadURLIssuer, container.Config.CDNDomainURL, container.Logger),
		logger:  container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// The read and sign operations carry their parameters in a JSON
		// body; the handlers read the body regardless of method.
		r.Get("/stacks", rt.stacks.GetStacks)
		r.Post("/stacks", rt.stacks.SaveStack)
		r.Get("/uploads/signed-urls", rt.uploads.GetSignedUploadURLs)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
