package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
)

// WordGroupStore defines persistence for word groups and their progress counters.
type WordGroupStore interface {
	// Create inserts a validated group.
	Create(ctx context.Context, group *domain.WordGroup) error

	// GetByID returns ErrWordGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WordGroup, error)

	// ListByUser returns the user's groups ordered by creation time, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordGroup, error)

	// Update writes the group's name.
	Update(ctx context.Context, group *domain.WordGroup) error

	// Delete removes a group. Returns ErrWordGroupNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustCounters atomically adds the deltas to total_words and
	// learned_words, clamping the result to 0 <= learned <= total.
	AdjustCounters(ctx context.Context, id uuid.UUID, totalDelta, learnedDelta int) error

	// SetCurrentWord points the group at wordID, or clears it when wordID is nil.
	SetCurrentWord(ctx context.Context, id uuid.UUID, wordID *uuid.UUID) error

	// ClearCurrentWordIf clears current_word_id only when it equals wordID
	// and reports whether it did.
	ClearCurrentWordIf(ctx context.Context, id uuid.UUID, wordID uuid.UUID) (bool, error)

	// WithTx returns a WordGroupStore bound to tx.
	WithTx(tx *sql.Tx) WordGroupStore
}
