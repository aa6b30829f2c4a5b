package api

import (
	"log/slog"
	"net/http"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/service"
)

// GenerationHandler serves the AI generation routes.
type GenerationHandler struct {
	generation service.GenerationService
	logger     *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(generation service.GenerationService, log *slog.Logger) *GenerationHandler {
	if generation == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generation cannot be nil for GenerationHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &GenerationHandler{
		generation: generation,
		logger:     log.With(slog.String("component", "generation_handler")),
	}
}

// GenerateGroup handles POST /word-groups/generate.
func (h *GenerationHandler) GenerateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	generated, err := h.generation.GenerateGroup(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusCreated, "Word group generated", GeneratedGroupResponse{
		Group: generated.Group,
		Words: generated.Words,
	})
}

// GenerateWords handles POST /word-groups/{id}/words/generate.
func (h *GenerationHandler) GenerateWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, groupID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	words, err := h.generation.GenerateWords(r.Context(), userID, groupID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusCreated, "Words generated", words)
}
