package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
)

// UserStore defines persistence for users.
type UserStore interface {
	// Create hashes user.Password and inserts the user.
	// Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound if no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
