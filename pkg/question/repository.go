package question

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// ListByOwner returns newest first; never nil.
	ListByOwner(ctx context.Context, userID uuid.UUID, f Filter) ([]Question, error)
	GetForOwner(ctx context.Context, userID, id uuid.UUID) (Question, error)
	Create(ctx context.Context, q Question) error
	UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p Patch) (Question, error)
	DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
