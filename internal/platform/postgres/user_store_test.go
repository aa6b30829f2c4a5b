package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/postgres"
	"github.com/lexicard/lexicard-api/internal/store"
)

func TestUserStore_Create_HashesPassword(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

	u, err := domain.NewUser("ada@example.com", "Ada", "correct horse battery")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(u.ID, "ada@example.com", "Ada", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), u))
	assert.Empty(t, u.Password, "plaintext is cleared after storing")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("correct horse battery")))
}

func TestUserStore_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

	u, err := domain.NewUser("ada@example.com", "Ada", "correct horse battery")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	assert.ErrorIs(t, s.Create(context.Background(), u), store.ErrEmailExists)
}

func TestUserStore_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "hashed_password", "created_at", "updated_at"}))

	_, err := s.GetByEmail(context.Background(), "  ADA@example.com ")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
