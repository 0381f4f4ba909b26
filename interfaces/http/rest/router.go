package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"promptflow-backend/application/services"
	"promptflow-backend/infrastructure/config"
	"promptflow-backend/interfaces/http/rest/handlers"
	"promptflow-backend/interfaces/http/rest/middleware"
	"promptflow-backend/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg       *config.Config
	prompts   *services.PromptService
	execution *services.ExecutionService
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	prompts *services.PromptService,
	execution *services.ExecutionService,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:       cfg,
		prompts:   prompts,
		execution: execution,
		logger:    logger,
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

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
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

	router.Route("/api", func(r chi.Router) {
		promptHandler := handlers.NewPromptHandler(rt.prompts, rt.logger)
		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", promptHandler.List)
			r.Post("/", promptHandler.Create)
			r.Get("/category/{category}", promptHandler.ListByCategory)
			r.Get("/{promptID}", promptHandler.Get)
			r.Put("/{promptID}", promptHandler.Update)
			r.Delete("/{promptID}", promptHandler.Delete)
		})

		r.Post("/execute-prompt", handlers.NewExecuteHandler(rt.execution, rt.logger).Execute)
		r.Post("/import-conversation", handlers.NewImportHandler(rt.logger).Import)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
