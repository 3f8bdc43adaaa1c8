package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rafeekpro/speecher/internal/config"
	"github.com/rafeekpro/speecher/internal/storage/sqlite"
	"github.com/rafeekpro/speecher/internal/transcription"
	"github.com/rafeekpro/speecher/pkg/logger"
)

// Router handles HTTP routing for the API
type Router struct {
	handler *Handler
	logger  *logger.Logger
}

// NewRouter creates a new API router wired to the transcription engine and
// transcript storage
func NewRouter(
	engine *transcription.Engine,
	transcriptStorage *sqlite.TranscriptStorage,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		handler: NewHandler(engine, transcriptStorage, cfg, log),
		logger:  log.Named("api"),
	}
}

// Routes returns the HTTP handler with all routes configured
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	// API routes
	router.Route("/api", func(api chi.Router) {
		api.Get("/health", r.handler.Health)

		api.Route("/transcriptions", func(t chi.Router) {
			t.Post("/process", r.handler.ProcessTranscription)
			t.Get("/", r.handler.GetAllTranscripts)
			t.Get("/{id}", r.handler.GetTranscript)
		})
	})

	return router
}
