package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/lexicard/lexicard-api/internal/config"
	"github.com/lexicard/lexicard-api/internal/generation"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
)

// contentGenerator is the subset of *genai.Models the generator calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator on top of the Gemini API.
type Generator struct {
	models     contentGenerator
	model      string
	language   string
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	return newGenerator(client.Models, cfg, log)
}

func newGenerator(models contentGenerator, cfg config.LLMConfig, log *slog.Logger) (*Generator, error) {
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	language := cfg.MeaningLanguage
	if language == "" {
		language = "Vietnamese"
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}

	return &Generator{
		models:     models,
		model:      cfg.ModelName,
		language:   language,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     log.With(slog.String("component", "gemini_generator")),
		sleep:      sleepContext,
	}, nil
}

// GenerateGroup implements generation.Generator.
func (g *Generator) GenerateGroup(ctx context.Context, excludedTopics []string) (*generation.Batch, error) {
	prompt, err := renderPrompt("group.tmpl", promptData{Language: g.language, Excluded: excludedTopics})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	return g.generate(ctx, prompt)
}

// GenerateWords implements generation.Generator.
func (g *Generator) GenerateWords(
	ctx context.Context,
	topic string,
	excludedWords []string,
) (*generation.Batch, error) {
	prompt, err := renderPrompt("words.tmpl", promptData{
		Topic:    topic,
		Language: g.language,
		Excluded: excludedWords,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	batch, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if batch.Topic == "" {
		batch.Topic = topic
	}
	return batch, nil
}

func (g *Generator) generate(ctx context.Context, prompt string) (*generation.Batch, error) {
	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseBatch(text)
}

// callWithRetry calls the model up to maxRetries+1 times. Blocked and
// malformed answers are permanent; network and 429/5xx failures are retried
// with exponential backoff and jitter.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.9),
	}

	for attempt := 0; ; attempt++ {
		log.Debug("calling gemini", slog.Int("attempt", attempt+1), slog.String("model", g.model))

		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err == nil {
			text, err := responseText(resp)
			if err != nil {
				log.Warn("gemini returned an unusable answer", slog.String("error", err.Error()))
				return "", err
			}
			return text, nil
		}

		if !isTransient(err) {
			log.Error("gemini call failed", slog.String("error", err.Error()))
			return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		}
		if attempt >= g.maxRetries {
			log.Error("gemini call failed after retries",
				slog.Int("attempts", attempt+1),
				slog.String("error", err.Error()))
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, g.maxRetries, err)
		}

		backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))
		log.Info("retrying gemini call",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		if err := g.sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return sb.String(), nil
}

// parseBatch accepts the requested object shape as well as a bare array of
// words, which the model occasionally returns for word prompts.
func parseBatch(text string) (*generation.Batch, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var batch generation.Batch
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &batch.Words); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
		}
	} else if err := json.Unmarshal([]byte(text), &batch); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}

	if len(batch.Words) == 0 {
		return nil, fmt.Errorf("%w: no words in response", generation.ErrInvalidResponse)
	}
	return &batch, nil
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
