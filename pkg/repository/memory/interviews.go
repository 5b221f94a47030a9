package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/interview"
)

// InterviewRepository implements interview.Repository. Ownership is always
// read from the parent application.
type InterviewRepository struct{ m *Memory }

func (r *InterviewRepository) listingsLocked(userID uuid.UUID, keep func(interview.Interview) bool) []interview.Listing {
	out := make([]interview.Listing, 0)
	for _, iv := range r.m.interviews {
		a, ok := r.m.applications[iv.ApplicationID]
		if !ok || a.UserID != userID || !keep(iv) {
			continue
		}
		out = append(out, interview.Listing{
			Interview:     iv,
			CompanyName:   a.CompanyName,
			PositionTitle: a.PositionTitle,
			JobURL:        a.JobURL,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InterviewDate.Before(out[j].InterviewDate)
	})
	return out
}

func (r *InterviewRepository) ListByOwner(_ context.Context, userID uuid.UUID, f interview.Filter) ([]interview.Listing, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	return r.listingsLocked(userID, func(iv interview.Interview) bool {
		if f.ApplicationID != nil && iv.ApplicationID != *f.ApplicationID {
			return false
		}
		return f.Status == nil || iv.Status == *f.Status
	}), nil
}

func (r *InterviewRepository) UpcomingByOwner(_ context.Context, userID uuid.UUID, from time.Time, limit int) ([]interview.Listing, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := r.listingsLocked(userID, func(iv interview.Interview) bool {
		return iv.Status == interview.StatusScheduled && !iv.InterviewDate.Before(from)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InterviewRepository) getLocked(userID, id uuid.UUID) (interview.Interview, bool) {
	iv, ok := r.m.interviews[id]
	if !ok || !r.m.ownsApplicationLocked(userID, iv.ApplicationID) {
		return interview.Interview{}, false
	}
	return iv, true
}

func (r *InterviewRepository) GetForOwner(_ context.Context, userID, id uuid.UUID) (interview.Interview, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	iv, ok := r.getLocked(userID, id)
	if !ok {
		return interview.Interview{}, apperr.ErrNotFound
	}
	return iv, nil
}

func (r *InterviewRepository) Create(_ context.Context, iv interview.Interview) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.applications[iv.ApplicationID]; !ok {
		return apperr.ErrAccessDenied
	}
	r.m.interviews[iv.ID] = iv
	return nil
}

func (r *InterviewRepository) UpdateForOwner(_ context.Context, userID, id uuid.UUID, p interview.Patch) (interview.Interview, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	iv, ok := r.getLocked(userID, id)
	if !ok {
		return interview.Interview{}, apperr.ErrNotFound
	}
	if p.ApplicationID != nil && !r.m.ownsApplicationLocked(userID, *p.ApplicationID) {
		return interview.Interview{}, apperr.ErrAccessDenied
	}
	p.Apply(&iv)
	r.m.interviews[id] = iv
	return iv, nil
}

func (r *InterviewRepository) DeleteForOwner(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.getLocked(userID, id); !ok {
		return false, nil
	}
	delete(r.m.interviews, id)
	return true, nil
}
