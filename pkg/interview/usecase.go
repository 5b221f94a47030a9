package interview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
)

type UseCase interface {
	List(ctx context.Context, userID uuid.UUID, f Filter) ([]Listing, error)
	Upcoming(ctx context.Context, userID uuid.UUID, limit int) ([]Listing, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Interview, error)
	Create(ctx context.Context, userID uuid.UUID, d Draft) (Interview, error)
	Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Interview, error)
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

func (s *service) List(ctx context.Context, userID uuid.UUID, f Filter) ([]Listing, error) {
	return s.repo.ListByOwner(ctx, userID, f)
}

func (s *service) Upcoming(ctx context.Context, userID uuid.UUID, limit int) ([]Listing, error) {
	return s.repo.UpcomingByOwner(ctx, userID, s.now(), UpcomingLimit(limit))
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (Interview, error) {
	return s.repo.GetForOwner(ctx, userID, id)
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, d Draft) (Interview, error) {
	if err := d.Validate(); err != nil {
		return Interview{}, err
	}
	if err := s.checkApplication(ctx, userID, d.ApplicationID); err != nil {
		return Interview{}, err
	}
	iv := Interview{
		ID:               uuid.New(),
		ApplicationID:    d.ApplicationID,
		InterviewType:    d.InterviewType,
		InterviewDate:    d.InterviewDate.UTC(),
		DurationMinutes:  d.DurationMinutes,
		InterviewerNames: d.InterviewerNames,
		Platform:         d.Platform,
		Status:           d.Status,
		PrepNotes:        d.PrepNotes,
		InterviewNotes:   d.InterviewNotes,
		QuestionsAsked:   d.QuestionsAsked,
		Rating:           d.Rating,
		FollowUpActions:  d.FollowUpActions,
		CreatedAt:        s.now(),
	}
	if err := s.repo.Create(ctx, iv); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Interview, error) {
	if err := p.Validate(); err != nil {
		return Interview{}, err
	}
	if p.ApplicationID != nil {
		if _, err := s.repo.GetForOwner(ctx, userID, id); err != nil {
			return Interview{}, err
		}
		if err := s.checkApplication(ctx, userID, *p.ApplicationID); err != nil {
			return Interview{}, err
		}
	}
	if p.InterviewDate != nil {
		d := p.InterviewDate.UTC()
		p.InterviewDate = &d
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
