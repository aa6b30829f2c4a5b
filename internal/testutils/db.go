package testutils

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// NewMockDB returns a sqlmock-backed database. Expectations are verified
// and the database is closed when the test finishes.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock database")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet(), "Unmet sqlmock expectations")
		_ = db.Close()
	})
	return db, mock
}

// ExpectCommittedTx registers a transaction that begins and commits.
func ExpectCommittedTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

// ExpectRolledBackTx registers a transaction that begins and rolls back.
func ExpectRolledBackTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}
