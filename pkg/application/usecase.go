package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
)

// UseCase is the application-tracking behaviour exposed to handlers.
type UseCase interface {
	List(ctx context.Context, userID uuid.UUID, f Filter) ([]Application, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Application, error)
	Create(ctx context.Context, userID uuid.UUID, d Draft) (Application, error)
	Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Application, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (Stats, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: clock}
}

// clock returns UTC time at the precision Postgres stores.
func clock() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

func (s *service) List(ctx context.Context, userID uuid.UUID, f Filter) ([]Application, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.ListByOwner(ctx, userID, f)
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (Application, error) {
	return s.repo.GetForOwner(ctx, userID, id)
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, d Draft) (Application, error) {
	if err := d.Validate(); err != nil {
		return Application{}, err
	}
	now := s.now()
	a := Application{
		ID:              uuid.New(),
		UserID:          userID,
		CompanyName:     d.CompanyName,
		PositionTitle:   d.PositionTitle,
		JobURL:          d.JobURL,
		LogoURL:         d.LogoURL,
		Status:          d.Status,
		SalaryMin:       d.SalaryMin,
		SalaryMax:       d.SalaryMax,
		Location:        d.Location,
		IsRemote:        d.IsRemote,
		ApplicationDate: d.ApplicationDate.UTC(),
		Notes:           d.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Application, error) {
	if err := p.Validate(); err != nil {
		return Application{}, err
	}
	if p.ApplicationDate != nil {
		d := p.ApplicationDate.UTC()
		p.ApplicationDate = &d
	}
	return s.repo.UpdateForOwner(ctx, userID, id, p, s.now())
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

// Stats is computed on every call from the caller's current statuses.
func (s *service) Stats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	statuses, err := s.repo.StatusesByOwner(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return Tally(statuses), nil
}
