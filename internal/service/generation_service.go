package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/generation"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
)

const generationServiceName = "generation service"

// GeneratedGroup is a freshly generated group and the words created in it.
type GeneratedGroup struct {
	Group *domain.WordGroup `json:"group"`
	Words []*domain.Word    `json:"words"`
}

// GenerationService fills groups with AI-proposed vocabulary.
type GenerationService interface {
	// GenerateGroup creates a new group on a topic the user does not have yet.
	GenerateGroup(ctx context.Context, userID uuid.UUID) (*GeneratedGroup, error)

	// GenerateWords adds new words to an existing group, skipping words it already holds.
	GenerateWords(ctx context.Context, userID, groupID uuid.UUID) ([]*domain.Word, error)
}

type generationServiceImpl struct {
	generator generation.Generator
	groups    WordGroupService
	words     WordService
	logger    *slog.Logger
}

var _ GenerationService = (*generationServiceImpl)(nil)

// NewGenerationService creates a GenerationService. A nil generator yields a
// service whose operations fail with ErrGenerationDisabled.
func NewGenerationService(
	generator generation.Generator,
	groups WordGroupService,
	words WordService,
	log *slog.Logger,
) (GenerationService, error) {
	if groups == nil {
		return nil, &ServiceError{Service: generationServiceName, Operation: "create_service", Err: errors.New("word group service cannot be nil")}
	}
	if words == nil {
		return nil, &ServiceError{Service: generationServiceName, Operation: "create_service", Err: errors.New("word service cannot be nil")}
	}
	if log == nil {
		log = slog.Default()
	}

	return &generationServiceImpl{
		generator: generator,
		groups:    groups,
		words:     words,
		logger:    log.With(slog.String("component", "generation_service")),
	}, nil
}

func (s *generationServiceImpl) GenerateGroup(ctx context.Context, userID uuid.UUID) (*GeneratedGroup, error) {
	if s.generator == nil {
		return nil, ErrGenerationDisabled
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.groups.ListGroups(ctx, userID)
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(existing))
	for _, g := range existing {
		topics = append(topics, g.Name)
	}

	batch, err := s.generator.GenerateGroup(ctx, topics)
	if err != nil {
		return nil, wrapError(generationServiceName, "generate_group", err)
	}
	batch.Normalize(nil)
	if batch.Topic == "" || len(batch.Words) == 0 {
		return nil, fmt.Errorf("%w: generated group is empty", ErrUpstream)
	}

	group, err := s.groups.CreateGroup(ctx, userID, batch.Topic)
	if err != nil {
		return nil, err
	}
	words, err := s.words.AddWords(ctx, userID, group.ID, toWordInputs(batch.Words))
	if err != nil {
		if delErr := s.groups.DeleteGroup(ctx, userID, group.ID); delErr != nil {
			log.Error("failed to remove group after word generation failed",
				slog.String("group_id", group.ID.String()),
				slog.String("error", delErr.Error()))
		}
		return nil, err
	}
	group.Progress.TotalWords += len(words)

	log.Info("word group generated",
		slog.String("group_id", group.ID.String()),
		slog.String("topic", group.Name),
		slog.Int("words", len(words)))
	return &GeneratedGroup{Group: group, Words: words}, nil
}

func (s *generationServiceImpl) GenerateWords(
	ctx context.Context,
	userID, groupID uuid.UUID,
) ([]*domain.Word, error) {
	if s.generator == nil {
		return nil, ErrGenerationDisabled
	}

	group, err := s.groups.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	existing, err := s.words.ListWords(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	excluded := make([]string, 0, len(existing))
	for _, w := range existing {
		excluded = append(excluded, w.Word)
	}

	batch, err := s.generator.GenerateWords(ctx, group.Name, excluded)
	if err != nil {
		return nil, wrapError(generationServiceName, "generate_words", err)
	}
	batch.Normalize(excluded)
	if len(batch.Words) == 0 {
		return nil, fmt.Errorf("%w: no new words were generated", ErrUpstream)
	}

	words, err := s.words.AddWords(ctx, userID, groupID, toWordInputs(batch.Words))
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("words generated",
		slog.String("group_id", groupID.String()),
		slog.Int("words", len(words)))
	return words, nil
}

func toWordInputs(generated []generation.GeneratedWord) []NewWordInput {
	inputs := make([]NewWordInput, 0, len(generated))
	for _, g := range generated {
		inputs = append(inputs, NewWordInput{Word: g.Word, Meaning: g.Meaning, Type: g.Type})
	}
	return inputs
}
