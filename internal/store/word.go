package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
)

// WordStore defines persistence for words.
type WordStore interface {
	// Create inserts a validated word.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// ListByGroup returns the group's words, newest first.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Word, error)

	// Update writes every mutable field of word.
	// Returns ErrWordNotFound if the word does not exist.
	Update(ctx context.Context, word *domain.Word) error

	// Delete removes a word. Returns ErrWordNotFound if the word does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByGroup removes all words of a group and returns how many were removed.
	DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)

	// FindByStatus returns every word currently in status, across all groups.
	FindByStatus(ctx context.Context, status domain.WordStatus) ([]*domain.Word, error)

	// ReactivateBatch moves the listed words from timeout back to active,
	// clearing timeout_until and stamping last_reactivated_at with now.
	// Words no longer in timeout are skipped. At most MaxBatchSize ids are
	// accepted per call; larger slices return ErrBatchTooLarge.
	ReactivateBatch(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error)

	// Now returns the store's clock, the authority for all timeout arithmetic.
	Now(ctx context.Context) (time.Time, error)

	// WithTx returns a WordStore bound to tx.
	WithTx(tx *sql.Tx) WordStore
}
