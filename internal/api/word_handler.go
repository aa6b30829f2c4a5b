package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/redact"
	"github.com/lexicard/lexicard-api/internal/service"
)

// WordHandler serves the word routes.
type WordHandler struct {
	words                 service.WordService
	defaultTimeoutMinutes int
	logger                *slog.Logger
}

// NewWordHandler creates a WordHandler. defaultTimeoutMinutes applies to
// timeout requests that name no duration.
func NewWordHandler(words service.WordService, defaultTimeoutMinutes int, log *slog.Logger) *WordHandler {
	if words == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("words cannot be nil for WordHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WordHandler{
		words:                 words,
		defaultTimeoutMinutes: defaultTimeoutMinutes,
		logger:                log.With(slog.String("component", "word_handler")),
	}
}

// ListWords handles GET /word-groups/{id}/words.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, groupID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	words, err := h.words.ListWords(r.Context(), userID, groupID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "", words)
}

// AddWord handles POST /word-groups/{id}/words.
func (h *WordHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, groupID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req WordRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	word, err := h.words.AddWord(r.Context(), userID, groupID, service.NewWordInput{
		Word:    req.Word,
		Meaning: req.Meaning,
		Type:    req.Type,
		Example: req.Example,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusCreated, "Word added", word)
}

// GetWord handles GET /words/{id}.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	word, err := h.words.GetWord(r.Context(), userID, wordID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "", word)
}

// UpdateWord handles PUT /words/{id}.
func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateWordRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	word, err := h.words.UpdateWord(r.Context(), userID, wordID, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "Word updated", word)
}

// DeleteWord handles DELETE /words/{id}.
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.words.DeleteWord(r.Context(), userID, wordID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "Word deleted", nil)
}

// SetTimeout handles POST /words/{id}/timeout.
func (h *WordHandler) SetTimeout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}
	timeoutWord(w, r, h.words, userID, wordID, h.defaultTimeoutMinutes, log)
}

// timeoutWord is shared by the user and device timeout routes. An empty
// body selects the default duration.
func timeoutWord(
	w http.ResponseWriter,
	r *http.Request,
	words service.WordService,
	userID, wordID uuid.UUID,
	defaultMinutes int,
	log *slog.Logger,
) {
	var req TimeoutRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		log.Warn("invalid request format", redact.Attr(err))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	minutes, err := req.Minutes(defaultMinutes)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	word, err := words.SetTimeout(r.Context(), userID, wordID, minutes)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("word timed out",
		slog.String("word_id", wordID.String()),
		slog.Int("minutes", minutes))
	shared.RespondWithSuccess(w, r, http.StatusOK, "Word timed out", word)
}
