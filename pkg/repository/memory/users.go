package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/auth"
)

// UserRepository implements auth.UserRepository.
type UserRepository struct{ m *Memory }

var errNilUserID = errors.New("memory: user id is required")

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	if user.ID == uuid.Nil {
		return errNilUserID
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, u := range r.m.users {
		if u.ID == user.ID || u.Email == user.Email {
			return auth.ErrUserAlreadyExists
		}
	}
	r.m.users[user.ID] = user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	u, ok := r.m.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) UpsertExternal(_ context.Context, externalID, email string) (auth.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	email = strings.ToLower(email)
	for id, u := range r.m.users {
		if u.ExternalID != nil && *u.ExternalID == externalID {
			if u.Email != email {
				if r.emailTakenLocked(email, &id) {
					return auth.User{}, auth.ErrUserAlreadyExists
				}
				u.Email = email
				r.m.users[id] = u
			}
			return u, nil
		}
	}
	if r.emailTakenLocked(email, nil) {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	ext := externalID
	u := auth.User{ID: uuid.New(), Email: email, ExternalID: &ext, CreatedAt: now()}
	r.m.users[u.ID] = u
	return u, nil
}

// emailTakenLocked reports whether a user other than except holds email.
func (r *UserRepository) emailTakenLocked(email string, except *uuid.UUID) bool {
	for id, u := range r.m.users {
		if except != nil && id == *except {
			continue
		}
		if u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[id]; !ok {
		return false, nil
	}
	delete(r.m.users, id)
	for appID, a := range r.m.applications {
		if a.UserID == id {
			r.m.deleteApplicationLocked(appID)
		}
	}
	for rID, res := range r.m.resources {
		if res.UserID == id {
			delete(r.m.resources, rID)
		}
	}
	for qID, q := range r.m.questions {
		if q.UserID == id {
			delete(r.m.questions, qID)
		}
	}
	return true, nil
}
