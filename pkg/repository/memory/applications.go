package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/application"
	"github.com/artem13815/jobtracker/pkg/apperr"
)

func now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// ApplicationRepository implements application.Repository.
type ApplicationRepository struct{ m *Memory }

func (r *ApplicationRepository) ListByOwner(_ context.Context, userID uuid.UUID, f application.Filter) ([]application.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, a := range r.m.applications {
		if a.UserID != userID {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.Search != "" && !containsFold(a.CompanyName, f.Search) && !containsFold(a.PositionTitle, f.Search) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ApplicationDate.Equal(out[j].ApplicationDate) {
			return out[i].ApplicationDate.After(out[j].ApplicationDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ApplicationRepository) GetForOwner(_ context.Context, userID, id uuid.UUID) (application.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	a, ok := r.m.applications[id]
	if !ok || a.UserID != userID {
		return application.Application{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r *ApplicationRepository) ExistsForOwner(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return r.m.ownsApplicationLocked(userID, id), nil
}

func (r *ApplicationRepository) Create(_ context.Context, a application.Application) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[a.UserID]; !ok {
		return apperr.ErrAccessDenied
	}
	r.m.applications[a.ID] = a
	return nil
}

func (r *ApplicationRepository) UpdateForOwner(_ context.Context, userID, id uuid.UUID, p application.Patch, at time.Time) (application.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	a, ok := r.m.applications[id]
	if !ok || a.UserID != userID {
		return application.Application{}, apperr.ErrNotFound
	}
	p.Apply(&a, at)
	r.m.applications[id] = a
	return a, nil
}

func (r *ApplicationRepository) DeleteForOwner(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if !r.m.ownsApplicationLocked(userID, id) {
		return false, nil
	}
	r.m.deleteApplicationLocked(id)
	return true, nil
}

func (r *ApplicationRepository) StatusesByOwner(_ context.Context, userID uuid.UUID) ([]application.Status, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]application.Status, 0)
	for _, a := range r.m.applications {
		if a.UserID == userID {
			out = append(out, a.Status)
		}
	}
	return out, nil
}
