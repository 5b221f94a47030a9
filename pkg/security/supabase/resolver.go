// Package supabase resolves Supabase access tokens to local users.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/auth"
)

type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
}

// Identity is the Supabase user behind a token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Resolver implements auth.Resolver. Tokens are verified locally with the
// project JWT secret when one is configured, otherwise (or when local
// verification fails) against the Auth REST API. The Supabase user is then
// mapped to a local user through its external id.
type Resolver struct {
	cfg    Config
	users  auth.UserRepository
	client *http.Client
}

func NewResolver(cfg Config, users auth.UserRepository) *Resolver {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Resolver{
		cfg:    cfg,
		users:  users,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Resolver) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if strings.TrimSpace(token) == "" {
		return uuid.Nil, auth.ErrMissingCredential
	}
	ident, err := r.identify(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	user, err := r.users.UpsertExternal(ctx, ident.ID, ident.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			// The email already belongs to a local account.
			return uuid.Nil, auth.ErrInvalidCredential
		}
		return uuid.Nil, fmt.Errorf("%w: map supabase user: %v", auth.ErrResolverUnavailable, err)
	}
	return user.ID, nil
}

func (r *Resolver) identify(ctx context.Context, token string) (Identity, error) {
	if r.cfg.JWTSecret != "" {
		if ident, err := r.verifyLocal(token); err == nil {
			return ident, nil
		}
		if r.cfg.URL == "" {
			return Identity{}, auth.ErrInvalidCredential
		}
	}
	if r.cfg.URL == "" {
		return Identity{}, fmt.Errorf("%w: supabase url is not configured", auth.ErrResolverUnavailable)
	}
	return r.verifyRemote(ctx, token)
}

func (r *Resolver) verifyLocal(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(r.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil || !parsed.Valid {
		return Identity{}, auth.ErrInvalidCredential
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return Identity{}, auth.ErrInvalidCredential
	}
	return Identity{ID: sub, Email: email}, nil
}

func (r *Resolver) verifyRemote(ctx context.Context, token string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.URL+"/auth/v1/user", nil)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", auth.ErrResolverUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if r.cfg.AnonKey != "" {
		req.Header.Set("apikey", r.cfg.AnonKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", auth.ErrResolverUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return Identity{}, auth.ErrInvalidCredential
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Identity{}, fmt.Errorf("%w: supabase http %d: %s", auth.ErrResolverUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ident Identity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return Identity{}, fmt.Errorf("%w: decode supabase user: %v", auth.ErrResolverUnavailable, err)
	}
	if ident.ID == "" {
		return Identity{}, auth.ErrInvalidCredential
	}
	return ident, nil
}
