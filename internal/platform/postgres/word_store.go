package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

const wordColumns = `id, group_id, word, meaning, type, example, audio_url, status,
	timeout_until, last_reviewed, last_reactivated_at, created_at, updated_at`

// PostgresWordStore implements store.WordStore.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a word store on db, which may be a pool or a transaction.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

var _ store.WordStore = (*PostgresWordStore)(nil)

// WithTx implements store.WordStore.
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{db: tx, logger: s.logger}
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var (
		w                                           domain.Word
		status                                      string
		timeoutUntil, lastReviewed, lastReactivated sql.NullTime
	)
	err := row.Scan(
		&w.ID, &w.GroupID, &w.Word, &w.Meaning, &w.Type, &w.Example, &w.AudioURL, &status,
		&timeoutUntil, &lastReviewed, &lastReactivated, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Status = domain.WordStatus(status)
	w.TimeoutUntil = timePtr(timeoutUntil)
	w.LastReviewed = timePtr(lastReviewed)
	w.LastReactivatedAt = timePtr(lastReactivated)
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return &w, nil
}

func (s *PostgresWordStore) queryWords(ctx context.Context, query string, args ...any) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err, nil)
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, nil)
	}
	return words, nil
}

// Create implements store.WordStore.
func (s *PostgresWordStore) Create(ctx context.Context, w *domain.Word) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO words (`+wordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		w.ID, w.GroupID, w.Word, w.Meaning, w.Type, w.Example, w.AudioURL, string(w.Status),
		nullTime(w.TimeoutUntil), nullTime(w.LastReviewed), nullTime(w.LastReactivatedAt),
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create word",
			slog.String("word_id", w.ID.String()),
			slog.String("group_id", w.GroupID.String()),
			slog.String("error", err.Error()))
		return MapError(err, nil)
	}
	return nil
}

// GetByID implements store.WordStore.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id = $1`, id)
	w, err := scanWord(row)
	if err != nil {
		return nil, MapError(err, store.ErrWordNotFound)
	}
	return w, nil
}

// ListByGroup implements store.WordStore.
func (s *PostgresWordStore) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Word, error) {
	return s.queryWords(ctx,
		`SELECT `+wordColumns+` FROM words WHERE group_id = $1 ORDER BY created_at DESC`, groupID)
}

// Update implements store.WordStore.
func (s *PostgresWordStore) Update(ctx context.Context, w *domain.Word) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE words SET
			word = $2, meaning = $3, type = $4, example = $5, audio_url = $6, status = $7,
			timeout_until = $8, last_reviewed = $9, last_reactivated_at = $10, updated_at = $11
		WHERE id = $1`,
		w.ID, w.Word, w.Meaning, w.Type, w.Example, w.AudioURL, string(w.Status),
		nullTime(w.TimeoutUntil), nullTime(w.LastReviewed), nullTime(w.LastReactivatedAt), w.UpdatedAt,
	)
	if err != nil {
		return MapError(err, store.ErrWordNotFound)
	}
	return CheckRowsAffected(result, store.ErrWordNotFound)
}

// Delete implements store.WordStore.
func (s *PostgresWordStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return MapError(err, store.ErrWordNotFound)
	}
	return CheckRowsAffected(result, store.ErrWordNotFound)
}

// DeleteByGroup implements store.WordStore.
func (s *PostgresWordStore) DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, MapError(err, nil)
	}
	return result.RowsAffected()
}

// FindByStatus implements store.WordStore.
func (s *PostgresWordStore) FindByStatus(ctx context.Context, status domain.WordStatus) ([]*domain.Word, error) {
	return s.queryWords(ctx,
		`SELECT `+wordColumns+` FROM words WHERE status = $1 ORDER BY timeout_until NULLS FIRST`, string(status))
}

// ReactivateBatch implements store.WordStore. The ids travel as a single
// uuid[] literal so the statement is the same for any batch size.
func (s *PostgresWordStore) ReactivateBatch(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if len(ids) > store.MaxBatchSize {
		return 0, store.ErrBatchTooLarge
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE words SET status = 'active', timeout_until = NULL, last_reactivated_at = $2, updated_at = $2
		WHERE id = ANY($1::uuid[]) AND status = 'timeout'`,
		uuidArrayLiteral(ids), now,
	)
	if err != nil {
		return 0, MapError(err, nil)
	}
	return result.RowsAffected()
}

// Now implements store.WordStore using the database clock.
func (s *PostgresWordStore) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := s.db.QueryRowContext(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("failed to read database clock: %w", err)
	}
	return now.UTC(), nil
}

func uuidArrayLiteral(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
