package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lexicard/lexicard-api/internal/api"
	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/mocks"
	"github.com/lexicard/lexicard-api/internal/service"
	"github.com/lexicard/lexicard-api/internal/testutils"
)

func xlsxUpload(t *testing.T, field string, rows ...[]interface{}) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	book, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "words.xlsx")
	require.NoError(t, err)
	_, err = part.Write(book.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func newImportRouter(t *testing.T, userID uuid.UUID) (http.Handler, *mocks.MockWordService) {
	t.Helper()

	words := &mocks.MockWordService{}
	t.Cleanup(func() { words.AssertExpectations(t) })
	h := api.NewImportHandler(words, nil)
	return newTestRouter(userID, func(r chi.Router) {
		r.Post("/word-groups/{id}/import", h.Import)
	}), words
}

func TestImportHandler(t *testing.T) {
	t.Parallel()

	t.Run("adds every row in one batch", func(t *testing.T) {
		t.Parallel()
		userID, groupID := uuid.New(), uuid.New()
		router, words := newImportRouter(t, userID)

		created := []*domain.Word{
			testutils.MustCreateWordForTest(t, testutils.WithWordGroupID(groupID), testutils.WithWordText("apple")),
			testutils.MustCreateWordForTest(t, testutils.WithWordGroupID(groupID), testutils.WithWordText("run")),
		}
		words.On("AddWords", mock.Anything, userID, groupID, []service.NewWordInput{
			{Word: "apple", Meaning: "quả táo", Type: "noun"},
			{Word: "run", Meaning: "chạy", Type: "verb"},
		}).Return(created, nil)

		body, contentType := xlsxUpload(t, "file",
			[]interface{}{"word", "meaning", "type"},
			[]interface{}{"apple", "quả táo", "noun"},
			[]interface{}{"run", "chạy", "verb"})
		req := httptest.NewRequest(http.MethodPost, "/word-groups/"+groupID.String()+"/import", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var resp api.ImportResponse
		decodeData(t, rr, &resp)
		assert.Equal(t, 2, resp.Imported)
	})

	t.Run("missing file field", func(t *testing.T) {
		t.Parallel()
		router, _ := newImportRouter(t, uuid.New())

		body, contentType := xlsxUpload(t, "upload", []interface{}{"word", "meaning"}, []interface{}{"a", "b"})
		req := httptest.NewRequest(http.MethodPost, "/word-groups/"+uuid.NewString()+"/import", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid row is reported with its number", func(t *testing.T) {
		t.Parallel()
		router, words := newImportRouter(t, uuid.New())

		body, contentType := xlsxUpload(t, "file",
			[]interface{}{"word", "meaning"},
			[]interface{}{"apple"})
		req := httptest.NewRequest(http.MethodPost, "/word-groups/"+uuid.NewString()+"/import", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeEnvelope(t, rr).Message, "row 2")
		words.AssertNotCalled(t, "AddWords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
