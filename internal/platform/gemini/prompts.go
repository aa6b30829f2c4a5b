package gemini

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/lexicard/lexicard-api/internal/generation"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(promptFS, "prompts/*.tmpl"),
)

// promptData is passed to the prompt templates.
type promptData struct {
	Count    int
	Topic    string
	Language string
	Excluded []string
}

func renderPrompt(name string, data promptData) (string, error) {
	if data.Count == 0 {
		data.Count = generation.MaxWordsPerBatch
	}
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}
