package resource

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// ListByOwner returns newest first; never nil.
	ListByOwner(ctx context.Context, userID uuid.UUID, f Filter) ([]Resource, error)
	GetForOwner(ctx context.Context, userID, id uuid.UUID) (Resource, error)
	Create(ctx context.Context, r Resource) error
	UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p Patch) (Resource, error)
	DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// ApplicationLookup answers whether an application belongs to a user.
type ApplicationLookup interface {
	ExistsForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
