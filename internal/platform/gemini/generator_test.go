package gemini

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/lexicard/lexicard-api/internal/config"
	"github.com/lexicard/lexicard-api/internal/generation"
)

type fakeModels struct {
	mu        sync.Mutex
	responses []*genai.GenerateContentResponse
	errs      []error
	prompts   []string
	models    []string
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var prompt strings.Builder
	for _, c := range contents {
		for _, p := range c.Parts {
			prompt.WriteString(p.Text)
		}
	}
	f.prompts = append(f.prompts, prompt.String())
	f.models = append(f.models, model)

	i := len(f.prompts) - 1
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return nil, errors.New("no response queued")
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:      "test-key",
		ModelName:         "gemini-test",
		MaxRetries:        2,
		RetryDelaySeconds: 1,
		MeaningLanguage:   "Vietnamese",
	}
}

func newTestGenerator(t *testing.T, models *fakeModels) (*Generator, *[]time.Duration) {
	t.Helper()
	g, err := newGenerator(models, testLLMConfig(), nil)
	require.NoError(t, err)

	var slept []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return g, &slept
}

func TestGenerateGroup(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		textResponse(`{"topic":"Kitchen","words":[{"word":"ladle","meaning":"cái muôi","type":"noun"}]}`),
	}}
	g, _ := newTestGenerator(t, models)

	batch, err := g.GenerateGroup(context.Background(), []string{"Travel", "Weather"})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", batch.Topic)
	require.Len(t, batch.Words, 1)
	assert.Equal(t, generation.GeneratedWord{Word: "ladle", Meaning: "cái muôi", Type: "noun"}, batch.Words[0])

	require.Len(t, models.prompts, 1)
	assert.Contains(t, models.prompts[0], "Travel, Weather")
	assert.Contains(t, models.prompts[0], "Vietnamese")
	assert.Equal(t, "gemini-test", models.models[0])
}

func TestGenerateWords(t *testing.T) {
	t.Parallel()

	t.Run("keeps the requested topic", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{responses: []*genai.GenerateContentResponse{
			textResponse("```json\n[{\"word\":\"kettle\",\"meaning\":\"ấm đun nước\",\"type\":\"noun\"}]\n```"),
		}}
		g, _ := newTestGenerator(t, models)

		batch, err := g.GenerateWords(context.Background(), "Kitchen", []string{"ladle"})
		require.NoError(t, err)
		assert.Equal(t, "Kitchen", batch.Topic)
		require.Len(t, batch.Words, 1)
		assert.Equal(t, "kettle", batch.Words[0].Word)
		assert.Contains(t, models.prompts[0], "Kitchen")
		assert.Contains(t, models.prompts[0], "ladle")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("not json")}}
		g, _ := newTestGenerator(t, models)

		_, err := g.GenerateWords(context.Background(), "Kitchen", nil)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Len(t, models.prompts, 1, "malformed answers are not retried")
	})

	t.Run("empty word list", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse(`{"topic":"Kitchen","words":[]}`)}}
		g, _ := newTestGenerator(t, models)

		_, err := g.GenerateWords(context.Background(), "Kitchen", nil)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})
}

func TestSafetyBlock(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}}}
	g, _ := newTestGenerator(t, models)

	_, err := g.GenerateGroup(context.Background(), nil)
	assert.ErrorIs(t, err, generation.ErrContentBlocked)
	assert.True(t, generation.IsGenerationError(err))
}

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("recovers from rate limiting", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{
			errs: []error{genai.APIError{Code: 429, Message: "slow down"}, nil},
			responses: []*genai.GenerateContentResponse{
				nil,
				textResponse(`{"topic":"Sea","words":[{"word":"tide","meaning":"thủy triều","type":"noun"}]}`),
			},
		}
		g, slept := newTestGenerator(t, models)

		batch, err := g.GenerateGroup(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "Sea", batch.Topic)
		require.Len(t, *slept, 1)
		assert.GreaterOrEqual(t, (*slept)[0], 500*time.Millisecond)
		assert.LessOrEqual(t, (*slept)[0], time.Second)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()
		unavailable := genai.APIError{Code: 503, Message: "unavailable"}
		models := &fakeModels{errs: []error{unavailable, unavailable, unavailable}}
		g, slept := newTestGenerator(t, models)

		_, err := g.GenerateGroup(context.Background(), nil)
		assert.ErrorIs(t, err, generation.ErrTransientFailure)
		assert.Len(t, models.prompts, 3)
		assert.Len(t, *slept, 2)
	})

	t.Run("client errors are permanent", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{errs: []error{genai.APIError{Code: 400, Message: "bad request"}}}
		g, slept := newTestGenerator(t, models)

		_, err := g.GenerateGroup(context.Background(), nil)
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		assert.Len(t, models.prompts, 1)
		assert.Empty(t, *slept)
	})
}

func TestNewGeneratorConfig(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(context.Background(), config.LLMConfig{ModelName: "m"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg := testLLMConfig()
	cfg.ModelName = ""
	_, err = newGenerator(&fakeModels{}, cfg, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestRenderPrompt(t *testing.T) {
	t.Parallel()

	out, err := renderPrompt("words.tmpl", promptData{Topic: "Garden", Language: "Vietnamese"})
	require.NoError(t, err)
	assert.Contains(t, out, "Garden")
	assert.Contains(t, out, "10")

	_, err = renderPrompt("missing.tmpl", promptData{})
	assert.Error(t, err)
}
