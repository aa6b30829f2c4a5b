package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

// MaxRows bounds a single import so it fits in one batched insert.
const MaxRows = store.MaxBatchSize

var (
	// ErrInvalidWorkbook is returned when the upload is not a readable .xlsx file.
	ErrInvalidWorkbook = fmt.Errorf("%w: file is not a valid xlsx workbook", domain.ErrValidation)

	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = fmt.Errorf("%w: missing required column", domain.ErrValidation)

	// ErrInvalidRow is returned for a data row without a word or meaning.
	ErrInvalidRow = fmt.Errorf("%w: invalid row", domain.ErrValidation)

	// ErrNoRows is returned when the sheet has a header but no data.
	ErrNoRows = fmt.Errorf("%w: workbook contains no words", domain.ErrValidation)

	// ErrTooManyRows is returned when the sheet has more than MaxRows data rows.
	ErrTooManyRows = fmt.Errorf("%w: workbook contains more than %d words", domain.ErrValidation, MaxRows)
)

// Row is one word read from the workbook. Line is the 1-based sheet row.
type Row struct {
	Line    int
	Word    string
	Meaning string
	Type    string
	Example string
}

type columns struct {
	word, meaning, typ, example int
}

// ParseWords reads the first sheet of the workbook in r.
func ParseWords(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidWorkbook
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: word", ErrMissingColumn)
	}

	cols, err := parseHeader(raw[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(raw)-1)
	for i, record := range raw[1:] {
		line := i + 2
		row := Row{
			Line:    line,
			Word:    cell(record, cols.word),
			Meaning: cell(record, cols.meaning),
			Type:    cell(record, cols.typ),
			Example: cell(record, cols.example),
		}
		if row.Word == "" && row.Meaning == "" && row.Type == "" && row.Example == "" {
			continue
		}
		if row.Word == "" {
			return nil, fmt.Errorf("%w: row %d: word is empty", ErrInvalidRow, line)
		}
		if row.Meaning == "" {
			return nil, fmt.Errorf("%w: row %d: meaning is empty", ErrInvalidRow, line)
		}
		if len(rows) == MaxRows {
			return nil, ErrTooManyRows
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

func parseHeader(header []string) (columns, error) {
	cols := columns{word: -1, meaning: -1, typ: -1, example: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "word":
			cols.word = i
		case "meaning":
			cols.meaning = i
		case "type":
			cols.typ = i
		case "example":
			cols.example = i
		}
	}

	var missing []string
	if cols.word < 0 {
		missing = append(missing, "word")
	}
	if cols.meaning < 0 {
		missing = append(missing, "meaning")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

// cell returns the trimmed value at idx. GetRows omits trailing empty cells.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// IsImportError reports whether err came from parsing the workbook.
func IsImportError(err error) bool {
	return errors.Is(err, ErrInvalidWorkbook) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrInvalidRow) ||
		errors.Is(err, ErrNoRows) ||
		errors.Is(err, ErrTooManyRows)
}
