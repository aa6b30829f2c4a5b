package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/postgres"
	"github.com/lexicard/lexicard-api/internal/store"
)

var groupRowColumns = []string{
	"id", "user_id", "name", "total_words", "learned_words", "current_word_id", "created_at", "updated_at",
}

func TestWordGroupStore_Create(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordGroupStore(db, nil)

	g, err := domain.NewWordGroup(uuid.New(), "Travel")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO word_groups")).
		WithArgs(g.ID, g.UserID, "Travel", 0, 0, nil, g.CreatedAt, g.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), g))
}

func TestWordGroupStore_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordGroupStore(db, nil)
	userID := uuid.New()
	current := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(groupRowColumns).
			AddRow(uuid.NewString(), userID.String(), "Newer", 3, 1, current.String(), testNow, testNow).
			AddRow(uuid.NewString(), userID.String(), "Older", 0, 0, nil, testNow, testNow))

	groups, err := s.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Newer", groups[0].Name)
	assert.Equal(t, 3, groups[0].Progress.TotalWords)
	assert.Equal(t, 1, groups[0].Progress.LearnedWords)
	require.NotNil(t, groups[0].Progress.CurrentWordID)
	assert.Equal(t, current, *groups[0].Progress.CurrentWordID)
	assert.Nil(t, groups[1].Progress.CurrentWordID)
}

func TestWordGroupStore_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordGroupStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM word_groups WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(groupRowColumns))

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrWordGroupNotFound)
}

func TestWordGroupStore_AdjustCounters(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordGroupStore(db, nil)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("total_words = GREATEST(total_words + $2, 0)")).
		WithArgs(id, -1, -1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.AdjustCounters(context.Background(), id, -1, -1))
}

func TestWordGroupStore_AdjustCounters_NoopAndMissing(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordGroupStore(db, nil)

	require.NoError(t, s.AdjustCounters(context.Background(), uuid.New(), 0, 0), "zero deltas issue no query")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE word_groups SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.AdjustCounters(context.Background(), uuid.New(), 1, 0), store.ErrWordGroupNotFound)
}

func TestWordGroupStore_SetCurrentWord(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordGroupStore(db, nil)
	id, wordID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("SET current_word_id = $2")).
		WithArgs(id, wordID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.SetCurrentWord(context.Background(), id, &wordID))

	mock.ExpectExec(regexp.QuoteMeta("SET current_word_id = $2")).
		WithArgs(id, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.SetCurrentWord(context.Background(), id, nil))
}

func TestWordGroupStore_ClearCurrentWordIf(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordGroupStore(db, nil)
	id, wordID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND current_word_id = $2")).
		WithArgs(id, wordID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	cleared, err := s.ClearCurrentWordIf(context.Background(), id, wordID)
	require.NoError(t, err)
	assert.True(t, cleared)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND current_word_id = $2")).
		WithArgs(id, wordID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	cleared, err = s.ClearCurrentWordIf(context.Background(), id, wordID)
	require.NoError(t, err)
	assert.False(t, cleared, "a different current word is left alone")
}
