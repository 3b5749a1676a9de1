package auth

import (
	"context"

	"coatline/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *User) error

	// GetByID returns a user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByUsername returns a user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Update writes user fields back with optimistic locking.
	Update(ctx context.Context, user *User) error

	// Exists checks whether a username is taken.
	Exists(ctx context.Context, username string) (bool, error)

	// List returns all users, active first, ordered by username.
	List(ctx context.Context) ([]User, error)
}
