package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Resolver failure kinds. The HTTP gate answers 401 for the first two and
// 500 for ErrResolverUnavailable.
var (
	ErrMissingCredential   = errors.New("missing credential")
	ErrInvalidCredential   = errors.New("invalid or expired credential")
	ErrResolverUnavailable = errors.New("identity provider unavailable")
)

// Resolver turns a bearer token into the id of a local user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, token string) (uuid.UUID, error)

func (f ResolverFunc) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	return f(ctx, token)
}

// BearerToken extracts the token from an Authorization header value. Only the
// "Bearer <token>" form is accepted.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingCredential
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidCredential
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidCredential
	}
	return token, nil
}

// RequireAccount wraps a resolver so that tokens of deleted accounts stop
// resolving.
func RequireAccount(inner Resolver, users UserRepository) Resolver {
	return ResolverFunc(func(ctx context.Context, token string) (uuid.UUID, error) {
		id, err := inner.Resolve(ctx, token)
		if err != nil {
			return uuid.Nil, err
		}
		if _, err := users.GetByID(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return uuid.Nil, ErrInvalidCredential
			}
			return uuid.Nil, fmt.Errorf("%w: %v", ErrResolverUnavailable, err)
		}
		return id, nil
	})
}
