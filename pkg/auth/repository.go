package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = apperr.ErrNotFound
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// UpsertExternal returns the user mapped to an external subject, creating
	// it on first sight and refreshing its email otherwise.
	UpsertExternal(ctx context.Context, externalID, email string) (User, error)
	// Delete removes the user and everything it owns.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
