package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rafeekpro/speecher/internal/config"
	"github.com/rafeekpro/speecher/internal/storage/sqlite"
	"github.com/rafeekpro/speecher/internal/transcription"
	"github.com/rafeekpro/speecher/pkg/logger"
)

// Handler contains all the dependencies needed by the API handlers
type Handler struct {
	engine  *transcription.Engine
	storage *sqlite.TranscriptStorage
	config  *config.Config
	logger  *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	engine *transcription.Engine,
	storage *sqlite.TranscriptStorage,
	cfg *config.Config,
	log *logger.Logger,
) *Handler {
	return &Handler{
		engine:  engine,
		storage: storage,
		config:  cfg,
		logger:  log.Named("api"),
	}
}

// Health returns a simple health check response
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

// ProcessTranscription accepts a raw recognition result from AWS Transcribe,
// Azure Speech, or GCP Speech-to-Text and returns the normalized transcript.
// Rendering flags default from configuration and can be overridden per request
// with the "speakers" and "timestamps" query parameters. With "save=true" the
// transcript is also persisted to the history store.
func (h *Handler) ProcessTranscription(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.config.Transcription.MaxPayloadKB * 1024
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Recognition result exceeds the maximum payload size", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	opts := transcription.Options{
		SpeakerAttribution: parseBoolParam(r, "speakers", h.config.Transcription.SpeakerAttribution),
		IncludeTimestamps:  parseBoolParam(r, "timestamps", h.config.Transcription.IncludeTimestamps),
	}

	result, err := h.engine.Process(json.RawMessage(body), opts)
	if err != nil {
		h.writeProcessError(w, err)
		return
	}

	response := map[string]any{
		"timestamp": time.Now(),
		"format":    result.Format.String(),
		"count":     len(result.Lines),
		"lines":     result.Lines,
	}
	if len(result.Segments) > 0 {
		response["segments"] = result.Segments
	}

	if parseBoolParam(r, "save", false) {
		id, err := h.storage.Store(&sqlite.TranscriptRecord{
			Format:    result.Format.String(),
			Content:   strings.Join(result.Lines, "\n"),
			LineCount: len(result.Lines),
		})
		if err != nil {
			h.logger.Error("Failed to save transcript", logger.Error(err))
			http.Error(w, "Failed to save transcript", http.StatusInternalServerError)
			return
		}
		response["id"] = id
	}

	WriteJSON(w, http.StatusOK, response)
}

// writeProcessError maps engine errors to HTTP status codes
func (h *Handler) writeProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transcription.ErrMalformedPayload):
		http.Error(w, "The recognition result is not a valid JSON object", http.StatusBadRequest)
	case errors.Is(err, transcription.ErrUnrecognizedFormat):
		http.Error(w, "The recognition result could not be understood", http.StatusBadRequest)
	case errors.Is(err, transcription.ErrEmptyResult):
		http.Error(w, "Nothing was transcribed", http.StatusUnprocessableEntity)
	default:
		h.logger.Error("Failed to process recognition result", logger.Error(err))
		http.Error(w, "Failed to process recognition result", http.StatusInternalServerError)
	}
}

// GetAllTranscripts returns stored transcripts with pagination
func (h *Handler) GetAllTranscripts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaginationParams(r)

	transcripts, err := h.storage.List(limit, offset)
	if err != nil {
		h.logger.Error("Failed to retrieve transcripts", logger.Error(err))
		http.Error(w, "Failed to retrieve transcripts", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"timestamp":   time.Now(),
		"count":       len(transcripts),
		"transcripts": transcripts,
	})
}

// GetTranscript returns a single stored transcript by ID
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing transcript ID", http.StatusBadRequest)
		return
	}

	transcript, err := h.storage.GetByUUID(id)
	if errors.Is(err, sqlite.ErrNotFound) {
		http.Error(w, "Transcript not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to retrieve transcript", logger.Error(err))
		http.Error(w, "Failed to retrieve transcript", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, http.StatusOK, transcript)
}

// Helper functions
func parsePaginationParams(r *http.Request) (int, int) {
	limit := 100 // Default limit
	offset := 0  // Default offset

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}

func parseBoolParam(r *http.Request, name string, fallback bool) bool {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
