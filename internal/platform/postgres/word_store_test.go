package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/postgres"
	"github.com/lexicard/lexicard-api/internal/store"
)

var wordRowColumns = []string{
	"id", "group_id", "word", "meaning", "type", "example", "audio_url", "status",
	"timeout_until", "last_reviewed", "last_reactivated_at", "created_at", "updated_at",
}

var testNow = time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestWordStore_Create(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	w, err := domain.NewWord(uuid.New(), "apple", "a fruit", testNow)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO words")).
		WithArgs(w.ID, w.GroupID, "apple", "a fruit", "", "", "", "active",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), w))
}

func TestWordStore_Create_InvalidEntity(t *testing.T) {
	db, _ := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	w, err := domain.NewWord(uuid.New(), "apple", "a fruit", testNow)
	require.NoError(t, err)
	w.Status = domain.WordStatusTimeout // no timeout_until

	err = s.Create(context.Background(), w)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestWordStore_GetByID(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	id, groupID := uuid.New(), uuid.New()
	until := testNow.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM words WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(wordRowColumns).AddRow(
			id.String(), groupID.String(), "apple", "a fruit", "noun", "", "", "timeout",
			until, testNow, nil, testNow, testNow))

	w, err := s.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, w.ID)
	assert.Equal(t, groupID, w.GroupID)
	assert.Equal(t, domain.WordStatusTimeout, w.Status)
	require.NotNil(t, w.TimeoutUntil)
	assert.True(t, until.Equal(*w.TimeoutUntil))
	assert.Nil(t, w.LastReactivatedAt)
	assert.Equal(t, "noun", w.Type)
}

func TestWordStore_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM words WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(wordRowColumns))

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrWordNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWordStore_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	w, err := domain.NewWord(uuid.New(), "apple", "a fruit", testNow)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE words SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Update(context.Background(), w), store.ErrWordNotFound)
}

func TestWordStore_Delete(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM words WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Delete(context.Background(), id))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM words WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrWordNotFound)
}

func TestWordStore_FindByStatus(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	rows := sqlmock.NewRows(wordRowColumns).
		AddRow(uuid.NewString(), uuid.NewString(), "a", "b", "", "", "", "timeout", nil, nil, nil, testNow, testNow).
		AddRow(uuid.NewString(), uuid.NewString(), "c", "d", "", "", "", "timeout", testNow, nil, nil, testNow, testNow)
	mock.ExpectQuery(regexp.QuoteMeta("FROM words WHERE status = $1")).
		WithArgs("timeout").
		WillReturnRows(rows)

	words, err := s.FindByStatus(context.Background(), domain.WordStatusTimeout)

	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Nil(t, words[0].TimeoutUntil)
	assert.NotNil(t, words[1].TimeoutUntil)
}

func TestWordStore_ReactivateBatch(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	a, b := uuid.New(), uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = ANY($1::uuid[]) AND status = 'timeout'")).
		WithArgs("{"+a.String()+","+b.String()+"}", testNow).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := s.ReactivateBatch(context.Background(), []uuid.UUID{a, b}, testNow)

	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestWordStore_ReactivateBatch_Bounds(t *testing.T) {
	db, _ := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	n, err := s.ReactivateBatch(context.Background(), nil, testNow)
	require.NoError(t, err)
	assert.Zero(t, n, "empty batch is a no-op")

	ids := make([]uuid.UUID, store.MaxBatchSize+1)
	_, err = s.ReactivateBatch(context.Background(), ids, testNow)
	assert.ErrorIs(t, err, store.ErrBatchTooLarge)
}

func TestWordStore_Now(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	serverTime := time.Date(2024, 5, 10, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT NOW()")).
		WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow(serverTime))

	now, err := s.Now(context.Background())

	require.NoError(t, err)
	assert.Equal(t, time.UTC, now.Location())
	assert.True(t, serverTime.Equal(now))
}

func TestWordStore_WithTx(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresWordStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM words WHERE group_id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		n, err := s.WithTx(tx).DeleteByGroup(ctx, uuid.New())
		assert.EqualValues(t, 3, n)
		return err
	})
	require.NoError(t, err)
}
