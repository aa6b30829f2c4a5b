package api

import (
	"log/slog"
	"net/http"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/service"
)

// IoTHandler serves the /iot routes. Requests are authenticated by device
// API key; the key's owner acts as the user.
type IoTHandler struct {
	groups                service.WordGroupService
	words                 service.WordService
	defaultTimeoutMinutes int
	logger                *slog.Logger
}

// NewIoTHandler creates an IoTHandler.
func NewIoTHandler(
	groups service.WordGroupService,
	words service.WordService,
	defaultTimeoutMinutes int,
	log *slog.Logger,
) *IoTHandler {
	if groups == nil || words == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("groups and words cannot be nil for IoTHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &IoTHandler{
		groups:                groups,
		words:                 words,
		defaultTimeoutMinutes: defaultTimeoutMinutes,
		logger:                log.With(slog.String("component", "iot_handler")),
	}
}

// Flashcards handles GET /iot/flashcards: every group of the owner with its
// active words.
func (h *IoTHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	decks, err := h.groups.ListDecks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	out := make([]FlashcardDeck, 0, len(decks))
	for _, d := range decks {
		deck := FlashcardDeck{
			GroupID:       d.Group.ID,
			Name:          d.Group.Name,
			CurrentWordID: d.Group.Progress.CurrentWordID,
			Cards:         make([]Flashcard, 0, len(d.Words)),
		}
		for _, word := range d.Words {
			deck.Cards = append(deck.Cards, Flashcard{
				ID:       word.ID,
				Word:     word.Word,
				Meaning:  word.Meaning,
				Type:     word.Type,
				Example:  word.Example,
				AudioURL: word.AudioURL,
			})
		}
		out = append(out, deck)
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "", out)
}

// SetTimeout handles POST /iot/words/{wordId}/timeout.
func (h *IoTHandler) SetTimeout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "wordId", log)
	if !ok {
		return
	}
	timeoutWord(w, r, h.words, userID, wordID, h.defaultTimeoutMinutes, log)
}

// SetCurrentWord handles POST /iot/set-current-word?word=&group=.
func (h *IoTHandler) SetCurrentWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	setCurrentWord(w, r, h.groups, userID)
}
