package api_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/api"
	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/mocks"
	"github.com/lexicard/lexicard-api/internal/service"
	"github.com/lexicard/lexicard-api/internal/testutils"
)

func newIoTRouter(t *testing.T, userID uuid.UUID) (http.Handler, *mocks.MockWordGroupService, *mocks.MockWordService) {
	t.Helper()

	groups := &mocks.MockWordGroupService{}
	words := &mocks.MockWordService{}
	t.Cleanup(func() {
		groups.AssertExpectations(t)
		words.AssertExpectations(t)
	})

	h := api.NewIoTHandler(groups, words, 1440, nil)
	return newTestRouter(userID, func(r chi.Router) {
		r.Get("/iot/flashcards", h.Flashcards)
		r.Post("/iot/words/{wordId}/timeout", h.SetTimeout)
		r.Post("/iot/set-current-word", h.SetCurrentWord)
	}), groups, words
}

func TestIoTHandler_Flashcards(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	router, groups, _ := newIoTRouter(t, userID)
	group := testutils.MustCreateWordGroupForTest(t, testutils.WithGroupUserID(userID), testutils.WithGroupName("Kitchen"))
	word := testutils.MustCreateWordForTest(t, testutils.WithWordGroupID(group.ID), testutils.WithWordText("ladle"))

	groups.On("ListDecks", mock.Anything, userID).Return([]service.Deck{
		{Group: group, Words: []*domain.Word{word}},
	}, nil)

	rr := doJSON(t, router, http.MethodGet, "/iot/flashcards", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var decks []api.FlashcardDeck
	decodeData(t, rr, &decks)
	require.Len(t, decks, 1)
	assert.Equal(t, "Kitchen", decks[0].Name)
	require.Len(t, decks[0].Cards, 1)
	assert.Equal(t, word.ID, decks[0].Cards[0].ID)
	assert.Equal(t, "ladle", decks[0].Cards[0].Word)
}

func TestIoTHandler_SetTimeout(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	router, _, words := newIoTRouter(t, userID)
	word := testutils.MustCreateWordForTest(t, testutils.WithWordStatus(domain.WordStatusTimeout))

	words.On("SetTimeout", mock.Anything, userID, word.ID, 30).Return(word, nil)

	rr := doJSON(t, router, http.MethodPost, "/iot/words/"+word.ID.String()+"/timeout",
		map[string]interface{}{"timeoutMinutes": 30})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, router, http.MethodPost, "/iot/words/"+word.ID.String()+"/timeout",
		map[string]interface{}{"hours": -2})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestIoTHandler_SetCurrentWord(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	router, groups, _ := newIoTRouter(t, userID)
	group := testutils.MustCreateWordGroupForTest(t, testutils.WithGroupUserID(userID))
	wordID := uuid.New()

	groups.On("SetCurrentWord", mock.Anything, userID, group.ID, wordID).Return(group, nil)

	rr := doJSON(t, router, http.MethodPost,
		"/iot/set-current-word?group="+group.ID.String()+"&word="+wordID.String(), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
