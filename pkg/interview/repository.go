package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository stores interviews. Interviews carry no owner column: every method
// resolves ownership through the parent application's user.
type Repository interface {
	// ListByOwner orders by interview date, earliest first; never nil.
	ListByOwner(ctx context.Context, userID uuid.UUID, f Filter) ([]Listing, error)
	// UpcomingByOwner returns scheduled interviews at or after from, soonest first.
	UpcomingByOwner(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]Listing, error)
	GetForOwner(ctx context.Context, userID, id uuid.UUID) (Interview, error)
	Create(ctx context.Context, iv Interview) error
	UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p Patch) (Interview, error)
	DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// ApplicationLookup answers whether an application belongs to a user.
type ApplicationLookup interface {
	ExistsForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
