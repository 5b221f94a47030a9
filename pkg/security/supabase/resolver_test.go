package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/repository/memory"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestResolve_LocalSecret(t *testing.T) {
	users := memory.New().Users()
	r := NewResolver(Config{JWTSecret: "project-secret"}, users)
	ctx := context.Background()

	tok := signed(t, "project-secret", jwt.MapClaims{
		"sub": "supa-1", "email": "a@example.com", "exp": time.Now().Add(time.Hour).Unix(),
	})
	id, err := r.Resolve(ctx, tok)
	require.NoError(t, err)

	again, err := r.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	u, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u.ExternalID)
	assert.Equal(t, "supa-1", *u.ExternalID)

	_, err = r.Resolve(ctx, signed(t, "wrong", jwt.MapClaims{"sub": "supa-1"}))
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)

	expired := signed(t, "project-secret", jwt.MapClaims{"sub": "supa-1", "exp": time.Now().Add(-time.Hour).Unix()})
	_, err = r.Resolve(ctx, expired)
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)

	_, err = r.Resolve(ctx, "")
	assert.ErrorIs(t, err, auth.ErrMissingCredential)
}

func TestResolve_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/auth/v1/user", req.URL.Path)
		assert.Equal(t, "anon", req.Header.Get("apikey"))
		switch req.Header.Get("Authorization") {
		case "Bearer good":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"supa-2","email":"b@example.com","role":"authenticated"}`))
		case "Bearer revoked":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	r := NewResolver(Config{URL: srv.URL + "/", AnonKey: "anon"}, memory.New().Users())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "good")
	require.NoError(t, err)

	_, err = r.Resolve(ctx, "revoked")
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)

	_, err = r.Resolve(ctx, "boom")
	assert.ErrorIs(t, err, auth.ErrResolverUnavailable)
}

func TestResolve_RemoteDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewResolver(Config{URL: url}, memory.New().Users()).Resolve(context.Background(), "tok")
	assert.ErrorIs(t, err, auth.ErrResolverUnavailable)
}

func TestResolve_EmailOwnedByLocalAccount(t *testing.T) {
	m := memory.New()
	require.NoError(t, m.Users().Create(context.Background(), auth.User{ID: uuid.New(), Email: "taken@example.com"}))
	r := NewResolver(Config{JWTSecret: "s"}, m.Users())

	_, err := r.Resolve(context.Background(), signed(t, "s", jwt.MapClaims{"sub": "x", "email": "taken@example.com"}))
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}
