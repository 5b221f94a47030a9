package resource

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
)

type UseCase interface {
	List(ctx context.Context, userID uuid.UUID, f Filter) ([]Resource, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Resource, error)
	Create(ctx context.Context, userID uuid.UUID, d Draft) (Resource, error)
	Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Resource, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo Repository
	apps ApplicationLookup
	now  func() time.Time
}

func NewService(repo Repository, apps ApplicationLookup) UseCase {
	return &service{
		repo: repo,
		apps: apps,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, f Filter) ([]Resource, error) {
	return s.repo.ListByOwner(ctx, userID, f)
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (Resource, error) {
	return s.repo.GetForOwner(ctx, userID, id)
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, d Draft) (Resource, error) {
	if err := d.Validate(); err != nil {
		return Resource{}, err
	}
	if d.LinkedApplicationID != nil {
		if err := s.checkApplication(ctx, userID, *d.LinkedApplicationID); err != nil {
			return Resource{}, err
		}
	}
	r := Resource{
		ID:                  uuid.New(),
		UserID:              userID,
		Title:               d.Title,
		URL:                 d.URL,
		Category:            d.Category,
		Notes:               d.Notes,
		IsReviewed:          d.IsReviewed,
		LinkedApplicationID: d.LinkedApplicationID,
		CreatedAt:           s.now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Resource{}, err
	}
	return r, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Resource, error) {
	if err := p.Validate(); err != nil {
		return Resource{}, err
	}
	if p.LinkedApplicationID.Valid {
		if _, err := s.repo.GetForOwner(ctx, userID, id); err != nil {
			return Resource{}, err
		}
		if err := s.checkApplication(ctx, userID, p.LinkedApplicationID.Value); err != nil {
			return Resource{}, err
		}
	}
	return s.repo.UpdateForOwner(ctx, userID, id, p)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.repo.DeleteForOwner(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *service) checkApplication(ctx context.Context, userID, applicationID uuid.UUID) error {
	ok, err := s.apps.ExistsForOwner(ctx, userID, applicationID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrAccessDenied
	}
	return nil
}
