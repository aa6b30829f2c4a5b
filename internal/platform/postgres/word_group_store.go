package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

const wordGroupColumns = `id, user_id, name, total_words, learned_words, current_word_id, created_at, updated_at`

// PostgresWordGroupStore implements store.WordGroupStore.
type PostgresWordGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordGroupStore creates a word group store on db.
func NewPostgresWordGroupStore(db store.DBTX, logger *slog.Logger) *PostgresWordGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWordGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_group_store")),
	}
}

var _ store.WordGroupStore = (*PostgresWordGroupStore)(nil)

// WithTx implements store.WordGroupStore.
func (s *PostgresWordGroupStore) WithTx(tx *sql.Tx) store.WordGroupStore {
	return &PostgresWordGroupStore{db: tx, logger: s.logger}
}

func scanWordGroup(row rowScanner) (*domain.WordGroup, error) {
	var (
		g       domain.WordGroup
		current uuid.NullUUID
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Progress.TotalWords, &g.Progress.LearnedWords,
		&current, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Progress.CurrentWordID = uuidPtr(current)
	g.CreatedAt = g.CreatedAt.UTC()
	g.UpdatedAt = g.UpdatedAt.UTC()
	return &g, nil
}

// Create implements store.WordGroupStore.
func (s *PostgresWordGroupStore) Create(ctx context.Context, g *domain.WordGroup) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO word_groups (`+wordGroupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.UserID, g.Name, g.Progress.TotalWords, g.Progress.LearnedWords,
		nullUUID(g.Progress.CurrentWordID), g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create word group",
			slog.String("group_id", g.ID.String()),
			slog.String("user_id", g.UserID.String()),
			slog.String("error", err.Error()))
		return MapError(err, nil)
	}
	return nil
}

// GetByID implements store.WordGroupStore.
func (s *PostgresWordGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WordGroup, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wordGroupColumns+` FROM word_groups WHERE id = $1`, id)
	g, err := scanWordGroup(row)
	if err != nil {
		return nil, MapError(err, store.ErrWordGroupNotFound)
	}
	return g, nil
}

// ListByUser implements store.WordGroupStore.
func (s *PostgresWordGroupStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordGroupColumns+` FROM word_groups WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, MapError(err, nil)
	}
	defer func() { _ = rows.Close() }()

	var groups []*domain.WordGroup
	for rows.Next() {
		g, err := scanWordGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, nil)
	}
	return groups, nil
}

// Update implements store.WordGroupStore.
func (s *PostgresWordGroupStore) Update(ctx context.Context, g *domain.WordGroup) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE word_groups SET name = $2, updated_at = $3 WHERE id = $1`, g.ID, g.Name, g.UpdatedAt)
	if err != nil {
		return MapError(err, store.ErrWordGroupNotFound)
	}
	return CheckRowsAffected(result, store.ErrWordGroupNotFound)
}

// Delete implements store.WordGroupStore.
func (s *PostgresWordGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM word_groups WHERE id = $1`, id)
	if err != nil {
		return MapError(err, store.ErrWordGroupNotFound)
	}
	return CheckRowsAffected(result, store.ErrWordGroupNotFound)
}

// AdjustCounters implements store.WordGroupStore. The increments are applied
// by the database in a single statement, so concurrent adjustments on the
// same group do not lose updates.
func (s *PostgresWordGroupStore) AdjustCounters(ctx context.Context, id uuid.UUID, totalDelta, learnedDelta int) error {
	if totalDelta == 0 && learnedDelta == 0 {
		return nil
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE word_groups SET
			total_words = GREATEST(total_words + $2, 0),
			learned_words = LEAST(GREATEST(learned_words + $3, 0), GREATEST(total_words + $2, 0)),
			updated_at = NOW()
		WHERE id = $1`,
		id, totalDelta, learnedDelta,
	)
	if err != nil {
		s.logger.Error("failed to adjust word group counters",
			slog.String("group_id", id.String()),
			slog.Int("total_delta", totalDelta),
			slog.Int("learned_delta", learnedDelta),
			slog.String("error", err.Error()))
		return MapError(err, store.ErrWordGroupNotFound)
	}
	return CheckRowsAffected(result, store.ErrWordGroupNotFound)
}

// SetCurrentWord implements store.WordGroupStore.
func (s *PostgresWordGroupStore) SetCurrentWord(ctx context.Context, id uuid.UUID, wordID *uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE word_groups SET current_word_id = $2, updated_at = NOW() WHERE id = $1`, id, nullUUID(wordID))
	if err != nil {
		return MapError(err, store.ErrWordGroupNotFound)
	}
	return CheckRowsAffected(result, store.ErrWordGroupNotFound)
}

// ClearCurrentWordIf implements store.WordGroupStore.
func (s *PostgresWordGroupStore) ClearCurrentWordIf(ctx context.Context, id uuid.UUID, wordID uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE word_groups SET current_word_id = NULL, updated_at = NOW()
		WHERE id = $1 AND current_word_id = $2`, id, wordID)
	if err != nil {
		return false, MapError(err, nil)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}
