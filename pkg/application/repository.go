package application

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the owner-scoped storage port for applications. Every method
// treats a row owned by another user exactly like a missing row.
type Repository interface {
	// ListByOwner returns matches newest applicationDate first; never nil.
	ListByOwner(ctx context.Context, userID uuid.UUID, f Filter) ([]Application, error)
	GetForOwner(ctx context.Context, userID, id uuid.UUID) (Application, error)
	ExistsForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error)
	Create(ctx context.Context, a Application) error
	// UpdateForOwner applies p and sets updated_at to now, even when p is empty.
	UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p Patch, now time.Time) (Application, error)
	// DeleteForOwner reports whether a row was removed. Interviews go with it
	// and resources linking to it are unlinked.
	DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error)
	StatusesByOwner(ctx context.Context, userID uuid.UUID) ([]Status, error)
}
