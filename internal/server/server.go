package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/setforge/internal/catalog"
	"github.com/claude/setforge/internal/models"
	"github.com/claude/setforge/internal/pipeline"
	"github.com/claude/setforge/internal/storage"
)

// Store is the persistence surface the handlers need. *storage.DB
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	pipeline.MappingStore
	UpsertMapping(ctx context.Context, name, canonical string) error
	DeleteMapping(ctx context.Context, name string) error
	ListMappings(ctx context.Context) (map[string]string, error)
	PopularMappings(ctx context.Context, name string, limit int) ([]models.PopularMapping, error)
	SaveWorkout(ctx context.Context, w models.Workout) (uuid.UUID, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (storage.SavedWorkout, error)
	ListWorkouts(ctx context.Context, limit int) ([]storage.SavedWorkout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	index  *catalog.Index
	pipe   *pipeline.Pipeline
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, index *catalog.Index, pipe *pipeline.Pipeline, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		index:  index,
		pipe:   pipe,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	// Read and matching endpoints (no auth)
	s.router.Post("/api/v1/match", s.handleMatch)
	s.router.Post("/api/v1/plans", s.handlePlan)
	s.router.Post("/api/v1/export/{target}", s.handleExport)
	s.router.Get("/api/v1/catalog", s.handleCatalog)
	s.router.Get("/api/v1/mappings", s.handleListMappings)
	s.router.Get("/api/v1/mappings/{name}/popular", s.handlePopularMappings)
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Put("/api/v1/mappings/{name}", s.handlePutMapping)
		r.Delete("/api/v1/mappings/{name}", s.handleDeleteMapping)
		r.Post("/api/v1/workouts", s.handleSaveWorkout)
		r.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
	})
}
