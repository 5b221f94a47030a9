package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/resource"
)

// ResourceRepository implements resource.Repository.
type ResourceRepository struct{ m *Memory }

func (r *ResourceRepository) ListByOwner(_ context.Context, userID uuid.UUID, f resource.Filter) ([]resource.Resource, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]resource.Resource, 0)
	for _, res := range r.m.resources {
		if res.UserID != userID {
			continue
		}
		if f.Category != nil && res.Category != *f.Category {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ResourceRepository) GetForOwner(_ context.Context, userID, id uuid.UUID) (resource.Resource, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	res, ok := r.m.resources[id]
	if !ok || res.UserID != userID {
		return resource.Resource{}, apperr.ErrNotFound
	}
	return res, nil
}

func (r *ResourceRepository) Create(_ context.Context, res resource.Resource) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[res.UserID]; !ok {
		return apperr.ErrAccessDenied
	}
	if res.LinkedApplicationID != nil {
		if _, ok := r.m.applications[*res.LinkedApplicationID]; !ok {
			return apperr.ErrAccessDenied
		}
	}
	r.m.resources[res.ID] = res
	return nil
}

func (r *ResourceRepository) UpdateForOwner(_ context.Context, userID, id uuid.UUID, p resource.Patch) (resource.Resource, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	res, ok := r.m.resources[id]
	if !ok || res.UserID != userID {
		return resource.Resource{}, apperr.ErrNotFound
	}
	if p.LinkedApplicationID.Valid {
		if _, ok := r.m.applications[p.LinkedApplicationID.Value]; !ok {
			return resource.Resource{}, apperr.ErrAccessDenied
		}
	}
	p.Apply(&res)
	r.m.resources[id] = res
	return res, nil
}

func (r *ResourceRepository) DeleteForOwner(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	res, ok := r.m.resources[id]
	if !ok || res.UserID != userID {
		return false, nil
	}
	delete(r.m.resources, id)
	return true, nil
}
