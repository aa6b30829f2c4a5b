package api

import (
	"log/slog"
	"net/http"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/importer"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/redact"
	"github.com/lexicard/lexicard-api/internal/service"
)

// MaxImportBytes bounds the size of an uploaded workbook.
const MaxImportBytes = 5 << 20

// ImportHandler serves POST /word-groups/{id}/import.
type ImportHandler struct {
	words  service.WordService
	logger *slog.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(words service.WordService, log *slog.Logger) *ImportHandler {
	if words == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("words cannot be nil for ImportHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ImportHandler{
		words:  words,
		logger: log.With(slog.String("component", "import_handler")),
	}
}

// Import reads the multipart "file" field as an .xlsx workbook and adds its
// rows to the group in one batch.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, groupID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxImportBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("missing or unreadable upload", redact.Attr(err))
		shared.RespondWithError(w, r, http.StatusBadRequest, "A .xlsx file is required in the \"file\" field")
		return
	}
	defer func() { _ = file.Close() }()

	rows, err := importer.ParseWords(file)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	inputs := make([]service.NewWordInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, service.NewWordInput{
			Word:    row.Word,
			Meaning: row.Meaning,
			Type:    row.Type,
			Example: row.Example,
		})
	}

	words, err := h.words.AddWords(r.Context(), userID, groupID, inputs)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("words imported",
		slog.String("group_id", groupID.String()),
		slog.String("file_name", header.Filename),
		slog.Int("count", len(words)))
	shared.RespondWithSuccess(w, r, http.StatusCreated, "Words imported", ImportResponse{
		Imported: len(words),
		Words:    words,
	})
}
