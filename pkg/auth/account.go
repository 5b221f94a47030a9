package auth

import (
	"context"

	"github.com/google/uuid"
)

// AccountUseCase exposes the caller's own account.
type AccountUseCase interface {
	Get(ctx context.Context, id uuid.UUID) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type accountService struct {
	repo UserRepository
}

func NewAccountService(repo UserRepository) AccountUseCase {
	return &accountService{repo: repo}
}

func (s *accountService) Get(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the account; applications, interviews, resources and
// questions go with it.
func (s *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
