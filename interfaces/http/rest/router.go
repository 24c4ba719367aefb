package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"stellium-backend/infrastructure/di"
	"stellium-backend/interfaces/http/rest/handlers"
	"stellium-backend/interfaces/http/rest/middleware"
	"stellium-backend/pkg/common"
	"stellium-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
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

	if rt.container.Config.EnableTracing {
		router.Use(middleware.Tracing(observability.NewTracer("stellium-api")))
	}

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.stellium.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.container.JWTValidator, rt.container.RateLimiter, rt.logger))

		// Check-in endpoints
		r.Route("/checkins", func(r chi.Router) {
			checkInHandler := handlers.NewCheckInHandler(
				rt.container.Handlers.LogCheckIn,
				rt.container.CommandBus,
				rt.container.QueryBus,
				rt.logger,
			)
			r.Post("/", checkInHandler.LogCheckIn)
			r.Get("/", checkInHandler.ListCheckIns)
			r.Delete("/{checkInID}", checkInHandler.DeleteCheckIn)
		})

		// Journal endpoints
		r.Route("/journal", func(r chi.Router) {
			journalHandler := handlers.NewJournalHandler(
				rt.container.Handlers.WriteJournal,
				rt.container.CommandBus,
				rt.container.QueryBus,
				rt.logger,
			)
			r.Post("/", journalHandler.WriteEntry)
			r.Get("/", journalHandler.ListEntries)
			r.Put("/{entryID}", journalHandler.UpdateEntry)
			r.Delete("/{entryID}", journalHandler.DeleteEntry)
		})

		// Profile endpoints
		r.Route("/profile", func(r chi.Router) {
			profileHandler := handlers.NewProfileHandler(
				rt.container.Handlers.SaveProfile,
				rt.container.QueryBus,
				rt.logger,
			)
			r.Get("/", profileHandler.GetProfile)
			r.Put("/", profileHandler.SaveProfile)
		})

		// Insights endpoint
		r.Get("/insights", handlers.NewInsightsHandler(rt.container.QueryBus, rt.logger).GetInsights)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
