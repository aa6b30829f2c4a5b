package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/service"
)

// WordGroupHandler serves the /word-groups and /progress routes.
type WordGroupHandler struct {
	groups service.WordGroupService
	logger *slog.Logger
}

// NewWordGroupHandler creates a WordGroupHandler.
func NewWordGroupHandler(groups service.WordGroupService, log *slog.Logger) *WordGroupHandler {
	if groups == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("groups cannot be nil for WordGroupHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WordGroupHandler{
		groups: groups,
		logger: log.With(slog.String("component", "word_group_handler")),
	}
}

// ListGroups handles GET /word-groups.
func (h *WordGroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	groups, err := h.groups.ListGroups(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "", groups)
}

// CreateGroup handles POST /word-groups.
func (h *WordGroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req GroupRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusCreated, "Word group created", group)
}

// GetGroup handles GET /word-groups/{id}.
func (h *WordGroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, groupID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	group, err := h.groups.GetGroup(r.Context(), userID, groupID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "", group)
}

// UpdateGroup handles PUT /word-groups/{id}.
func (h *WordGroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, groupID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req GroupRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	group, err := h.groups.UpdateGroup(r.Context(), userID, groupID, domain.WordGroupUpdate{Name: &req.Name})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "Word group updated", group)
}

// DeleteGroup handles DELETE /word-groups/{id}.
func (h *WordGroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, groupID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.groups.DeleteGroup(r.Context(), userID, groupID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "Word group deleted", nil)
}

// SetCurrentWord handles POST /word-groups/set-current-word?word=&group=.
func (h *WordGroupHandler) SetCurrentWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	setCurrentWord(w, r, h.groups, userID)
}

// Progress handles GET /progress.
func (h *WordGroupHandler) Progress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	groups, err := h.groups.ListGroups(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	progress := make([]ProgressResponse, 0, len(groups))
	for _, g := range groups {
		progress = append(progress, progressToResponse(g))
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "", progress)
}

// setCurrentWord is shared by the user and device routes.
func setCurrentWord(w http.ResponseWriter, r *http.Request, groups service.WordGroupService, userID uuid.UUID) {
	groupID, wordID, err := parseCurrentWordQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	group, err := groups.SetCurrentWord(r.Context(), userID, groupID, wordID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "Current word updated", group)
}
