package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/store"
)

const wordGroupServiceName = "word group service"

// Deck is a group together with the words a device should currently show.
type Deck struct {
	Group *domain.WordGroup `json:"group"`
	Words []*domain.Word    `json:"words"`
}

// WordGroupService provides word group management.
type WordGroupService interface {
	// CreateGroup creates an empty group for userID.
	CreateGroup(ctx context.Context, userID uuid.UUID, name string) (*domain.WordGroup, error)

	// ListGroups returns the user's groups, newest first.
	ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.WordGroup, error)

	// GetGroup returns a single group owned by userID.
	GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*domain.WordGroup, error)

	// UpdateGroup applies the non-nil fields of update to the group.
	UpdateGroup(
		ctx context.Context,
		userID, groupID uuid.UUID,
		update domain.WordGroupUpdate,
	) (*domain.WordGroup, error)

	// DeleteGroup removes the group and all of its words in one transaction.
	DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error

	// SetCurrentWord points the group's progress at wordID. The word must
	// belong to the group.
	SetCurrentWord(ctx context.Context, userID, groupID, wordID uuid.UUID) (*domain.WordGroup, error)

	// ListDecks returns every group of the user with its active words.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]Deck, error)
}

type wordGroupServiceImpl struct {
	db     *sql.DB
	groups store.WordGroupStore
	words  store.WordStore
	logger *slog.Logger
}

var _ WordGroupService = (*wordGroupServiceImpl)(nil)

// NewWordGroupService creates a WordGroupService.
// It returns an error if any of the required dependencies are nil.
func NewWordGroupService(
	db *sql.DB,
	groups store.WordGroupStore,
	words store.WordStore,
	log *slog.Logger,
) (WordGroupService, error) {
	if db == nil {
		return nil, &ServiceError{Service: wordGroupServiceName, Operation: "create_service", Err: errors.New("db cannot be nil")}
	}
	if groups == nil {
		return nil, &ServiceError{Service: wordGroupServiceName, Operation: "create_service", Err: errors.New("word group store cannot be nil")}
	}
	if words == nil {
		return nil, &ServiceError{Service: wordGroupServiceName, Operation: "create_service", Err: errors.New("word store cannot be nil")}
	}
	if log == nil {
		log = slog.Default()
	}

	return &wordGroupServiceImpl{
		db:     db,
		groups: groups,
		words:  words,
		logger: log.With(slog.String("component", "word_group_service")),
	}, nil
}

func (s *wordGroupServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *wordGroupServiceImpl) CreateGroup(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.WordGroup, error) {
	group, err := domain.NewWordGroup(userID, name)
	if err != nil {
		return nil, err
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, wrapError(wordGroupServiceName, "create_group", err)
	}

	s.log(ctx).Info("word group created",
		slog.String("group_id", group.ID.String()),
		slog.String("user_id", userID.String()))
	return group, nil
}

func (s *wordGroupServiceImpl) ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.WordGroup, error) {
	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapError(wordGroupServiceName, "list_groups", err)
	}
	return groups, nil
}

func (s *wordGroupServiceImpl) GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*domain.WordGroup, error) {
	group, err := loadOwnedGroup(ctx, s.groups, userID, groupID)
	if err != nil {
		return nil, wrapError(wordGroupServiceName, "get_group", err)
	}
	return group, nil
}

func (s *wordGroupServiceImpl) UpdateGroup(
	ctx context.Context,
	userID, groupID uuid.UUID,
	update domain.WordGroupUpdate,
) (*domain.WordGroup, error) {
	group, err := loadOwnedGroup(ctx, s.groups, userID, groupID)
	if err != nil {
		return nil, wrapError(wordGroupServiceName, "update_group", err)
	}
	if err := group.ApplyUpdate(update); err != nil {
		return nil, err
	}
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, wrapError(wordGroupServiceName, "update_group", err)
	}
	return group, nil
}

func (s *wordGroupServiceImpl) DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	var removed int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txGroups := s.groups.WithTx(tx)
		if _, err := loadOwnedGroup(ctx, txGroups, userID, groupID); err != nil {
			return err
		}
		// The current word reference must go before the words it may point at.
		if err := txGroups.SetCurrentWord(ctx, groupID, nil); err != nil {
			return err
		}
		var err error
		if removed, err = s.words.WithTx(tx).DeleteByGroup(ctx, groupID); err != nil {
			return err
		}
		return txGroups.Delete(ctx, groupID)
	})
	if err != nil {
		return wrapError(wordGroupServiceName, "delete_group", err)
	}

	s.log(ctx).Info("word group deleted",
		slog.String("group_id", groupID.String()),
		slog.Int64("words_removed", removed))
	return nil
}

func (s *wordGroupServiceImpl) SetCurrentWord(
	ctx context.Context,
	userID, groupID, wordID uuid.UUID,
) (*domain.WordGroup, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, wrapError(wordGroupServiceName, "set_current_word", err)
	}
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, wrapError(wordGroupServiceName, "set_current_word", err)
	}
	if !group.IsOwnedBy(userID) {
		return nil, ErrNotOwned
	}
	if word.GroupID != group.ID {
		return nil, ErrWordGroupMismatch
	}

	if err := s.groups.SetCurrentWord(ctx, group.ID, &word.ID); err != nil {
		return nil, wrapError(wordGroupServiceName, "set_current_word", err)
	}
	current := word.ID
	group.Progress.CurrentWordID = &current

	s.log(ctx).Debug("current word set",
		slog.String("group_id", group.ID.String()),
		slog.String("word_id", word.ID.String()))
	return group, nil
}

func (s *wordGroupServiceImpl) ListDecks(ctx context.Context, userID uuid.UUID) ([]Deck, error) {
	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapError(wordGroupServiceName, "list_decks", err)
	}

	decks := make([]Deck, 0, len(groups))
	for _, group := range groups {
		words, err := s.words.ListByGroup(ctx, group.ID)
		if err != nil {
			return nil, wrapError(wordGroupServiceName, "list_decks", err)
		}
		active := make([]*domain.Word, 0, len(words))
		for _, w := range words {
			if w.Status == domain.WordStatusActive {
				active = append(active, w)
			}
		}
		decks = append(decks, Deck{Group: group, Words: active})
	}
	return decks, nil
}
