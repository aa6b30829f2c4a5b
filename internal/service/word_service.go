package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/store"
)

const wordServiceName = "word service"

// Pronouncer looks up a pronunciation audio URL for a term.
type Pronouncer interface {
	Lookup(ctx context.Context, term string) (string, error)
}

// NewWordInput carries the caller-supplied fields of a word to create.
type NewWordInput struct {
	Word    string `json:"word"    validate:"required,max=200"`
	Meaning string `json:"meaning" validate:"required"`
	Type    string `json:"type"`
	Example string `json:"example"`
}

// WordService provides the word lifecycle operations. Every operation checks
// that the word's group exists before checking that userID owns it.
type WordService interface {
	// GetWord returns a single word owned by userID.
	GetWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error)

	// ListWords returns the words of a group owned by userID.
	ListWords(ctx context.Context, userID, groupID uuid.UUID) ([]*domain.Word, error)

	// AddWord creates an active word in the group and increments its total.
	// The pronunciation lookup is best-effort.
	AddWord(ctx context.Context, userID, groupID uuid.UUID, input NewWordInput) (*domain.Word, error)

	// AddWords creates several active words in one transaction.
	AddWords(ctx context.Context, userID, groupID uuid.UUID, inputs []NewWordInput) ([]*domain.Word, error)

	// UpdateWord applies a partial update; a status change runs first.
	UpdateWord(ctx context.Context, userID, wordID uuid.UUID, update domain.WordUpdate) (*domain.Word, error)

	// DeleteWord removes the word and adjusts its group's counters.
	DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error

	// SetTimeout hides the word for minutes, measured from the store clock.
	SetTimeout(ctx context.Context, userID, wordID uuid.UUID, minutes int) (*domain.Word, error)
}

type wordServiceImpl struct {
	db         *sql.DB
	words      store.WordStore
	groups     store.WordGroupStore
	pronouncer Pronouncer
	logger     *slog.Logger
}

var _ WordService = (*wordServiceImpl)(nil)

// NewWordService creates a WordService. pronouncer may be nil, which disables
// audio lookups. It returns an error if any other dependency is nil.
func NewWordService(
	db *sql.DB,
	words store.WordStore,
	groups store.WordGroupStore,
	pronouncer Pronouncer,
	log *slog.Logger,
) (WordService, error) {
	if db == nil {
		return nil, &ServiceError{Service: wordServiceName, Operation: "create_service", Err: errors.New("db cannot be nil")}
	}
	if words == nil {
		return nil, &ServiceError{Service: wordServiceName, Operation: "create_service", Err: errors.New("word store cannot be nil")}
	}
	if groups == nil {
		return nil, &ServiceError{Service: wordServiceName, Operation: "create_service", Err: errors.New("word group store cannot be nil")}
	}
	if log == nil {
		log = slog.Default()
	}

	return &wordServiceImpl{
		db:         db,
		words:      words,
		groups:     groups,
		pronouncer: pronouncer,
		logger:     log.With(slog.String("component", "word_service")),
	}, nil
}

func (s *wordServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// loadOwnedWord fetches a word and its group, enforcing existence before ownership.
func loadOwnedWord(
	ctx context.Context,
	words store.WordStore,
	groups store.WordGroupStore,
	userID, wordID uuid.UUID,
) (*domain.Word, *domain.WordGroup, error) {
	word, err := words.GetByID(ctx, wordID)
	if err != nil {
		return nil, nil, err
	}
	group, err := groups.GetByID(ctx, word.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if !group.IsOwnedBy(userID) {
		return nil, nil, ErrNotOwned
	}
	return word, group, nil
}

// loadOwnedGroup fetches a group, enforcing existence before ownership.
func loadOwnedGroup(
	ctx context.Context,
	groups store.WordGroupStore,
	userID, groupID uuid.UUID,
) (*domain.WordGroup, error) {
	group, err := groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsOwnedBy(userID) {
		return nil, ErrNotOwned
	}
	return group, nil
}

func (s *wordServiceImpl) GetWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	word, _, err := loadOwnedWord(ctx, s.words, s.groups, userID, wordID)
	if err != nil {
		return nil, wrapError(wordServiceName, "get_word", err)
	}
	return word, nil
}

func (s *wordServiceImpl) ListWords(ctx context.Context, userID, groupID uuid.UUID) ([]*domain.Word, error) {
	if _, err := loadOwnedGroup(ctx, s.groups, userID, groupID); err != nil {
		return nil, wrapError(wordServiceName, "list_words", err)
	}
	words, err := s.words.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, wrapError(wordServiceName, "list_words", err)
	}
	return words, nil
}

func (s *wordServiceImpl) AddWord(
	ctx context.Context,
	userID, groupID uuid.UUID,
	input NewWordInput,
) (*domain.Word, error) {
	log := s.log(ctx)

	if _, err := loadOwnedGroup(ctx, s.groups, userID, groupID); err != nil {
		return nil, wrapError(wordServiceName, "add_word", err)
	}

	now, err := s.words.Now(ctx)
	if err != nil {
		return nil, wrapError(wordServiceName, "add_word", err)
	}
	word, err := buildWord(groupID, input, now)
	if err != nil {
		return nil, err
	}

	if s.pronouncer != nil {
		audioURL, err := s.pronouncer.Lookup(ctx, word.Word)
		if err != nil {
			log.Warn("pronunciation lookup failed, continuing without audio",
				slog.String("word", word.Word),
				slog.String("error", err.Error()))
		} else {
			word.AudioURL = audioURL
		}
	}

	if err := s.insertWords(ctx, groupID, []*domain.Word{word}); err != nil {
		return nil, wrapError(wordServiceName, "add_word", err)
	}

	log.Info("word added",
		slog.String("word_id", word.ID.String()),
		slog.String("group_id", groupID.String()))
	return word, nil
}

func (s *wordServiceImpl) AddWords(
	ctx context.Context,
	userID, groupID uuid.UUID,
	inputs []NewWordInput,
) ([]*domain.Word, error) {
	if _, err := loadOwnedGroup(ctx, s.groups, userID, groupID); err != nil {
		return nil, wrapError(wordServiceName, "add_words", err)
	}
	if len(inputs) == 0 {
		return []*domain.Word{}, nil
	}
	if len(inputs) > store.MaxBatchSize {
		return nil, store.ErrBatchTooLarge
	}

	now, err := s.words.Now(ctx)
	if err != nil {
		return nil, wrapError(wordServiceName, "add_words", err)
	}
	words := make([]*domain.Word, 0, len(inputs))
	for _, input := range inputs {
		word, err := buildWord(groupID, input, now)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	if err := s.insertWords(ctx, groupID, words); err != nil {
		return nil, wrapError(wordServiceName, "add_words", err)
	}

	s.log(ctx).Info("words added",
		slog.Int("count", len(words)),
		slog.String("group_id", groupID.String()))
	return words, nil
}

func buildWord(groupID uuid.UUID, input NewWordInput, now time.Time) (*domain.Word, error) {
	word, err := domain.NewWord(groupID, input.Word, input.Meaning, now)
	if err != nil {
		return nil, err
	}
	word.Type = input.Type
	word.Example = input.Example
	return word, nil
}

// insertWords stores words and bumps the group total in one transaction.
func (s *wordServiceImpl) insertWords(ctx context.Context, groupID uuid.UUID, words []*domain.Word) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txWords := s.words.WithTx(tx)
		for _, word := range words {
			if err := txWords.Create(ctx, word); err != nil {
				return err
			}
		}
		return s.groups.WithTx(tx).AdjustCounters(ctx, groupID, len(words), 0)
	})
}

func (s *wordServiceImpl) UpdateWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
	update domain.WordUpdate,
) (*domain.Word, error) {
	if update.IsEmpty() {
		return nil, domain.ErrWordUpdateEmpty
	}

	var updated *domain.Word
	var transition domain.Transition
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txWords := s.words.WithTx(tx)
		txGroups := s.groups.WithTx(tx)

		word, group, err := loadOwnedWord(ctx, txWords, txGroups, userID, wordID)
		if err != nil {
			return err
		}
		now, err := txWords.Now(ctx)
		if err != nil {
			return err
		}
		if transition, err = word.ApplyUpdate(update, now); err != nil {
			return err
		}
		if err := txWords.Update(ctx, word); err != nil {
			return err
		}
		if transition.LearnedDelta != 0 {
			if err := txGroups.AdjustCounters(ctx, group.ID, 0, transition.LearnedDelta); err != nil {
				return err
			}
		}
		updated = word
		return nil
	})
	if err != nil {
		return nil, wrapError(wordServiceName, "update_word", err)
	}

	if transition.Changed() {
		s.log(ctx).Info("word status changed",
			slog.String("word_id", wordID.String()),
			slog.String("from", string(transition.From)),
			slog.String("to", string(transition.To)))
	}
	return updated, nil
}

func (s *wordServiceImpl) DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txWords := s.words.WithTx(tx)
		txGroups := s.groups.WithTx(tx)

		word, group, err := loadOwnedWord(ctx, txWords, txGroups, userID, wordID)
		if err != nil {
			return err
		}
		if _, err := txGroups.ClearCurrentWordIf(ctx, group.ID, word.ID); err != nil {
			return err
		}
		if err := txWords.Delete(ctx, word.ID); err != nil {
			return err
		}
		learnedDelta := 0
		if word.IsLearned() {
			learnedDelta = -1
		}
		return txGroups.AdjustCounters(ctx, group.ID, -1, learnedDelta)
	})
	if err != nil {
		return wrapError(wordServiceName, "delete_word", err)
	}

	s.log(ctx).Info("word deleted", slog.String("word_id", wordID.String()))
	return nil
}

func (s *wordServiceImpl) SetTimeout(
	ctx context.Context,
	userID, wordID uuid.UUID,
	minutes int,
) (*domain.Word, error) {
	if !domain.ValidTimeoutMinutes(minutes) {
		return nil, domain.ErrInvalidTimeoutDuration
	}

	var updated *domain.Word
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txWords := s.words.WithTx(tx)
		txGroups := s.groups.WithTx(tx)

		word, group, err := loadOwnedWord(ctx, txWords, txGroups, userID, wordID)
		if err != nil {
			return err
		}
		now, err := txWords.Now(ctx)
		if err != nil {
			return err
		}
		if _, err := word.ApplyTimeout(now, minutes); err != nil {
			return err
		}
		if err := txWords.Update(ctx, word); err != nil {
			return err
		}
		if _, err := txGroups.ClearCurrentWordIf(ctx, group.ID, word.ID); err != nil {
			return err
		}
		updated = word
		return nil
	})
	if err != nil {
		return nil, wrapError(wordServiceName, "set_timeout", err)
	}

	s.log(ctx).Info("word timed out",
		slog.String("word_id", wordID.String()),
		slog.Int("minutes", minutes),
		slog.Time("timeout_until", *updated.TimeoutUntil))
	return updated, nil
}
