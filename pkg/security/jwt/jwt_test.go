package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtracker/pkg/auth"
)

func TestGenerateAndResolve(t *testing.T) {
	user := auth.User{ID: uuid.New(), Email: "a@example.com"}
	gen := NewGenerator("secret", "jobtracker", time.Hour)
	tok, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	id, err := NewVerifier("secret", "jobtracker").Resolve(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestResolve_Rejects(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	ctx := context.Background()

	good, err := NewGenerator("secret", "jobtracker", time.Hour).Generate(ctx, user)
	require.NoError(t, err)

	expiredGen := NewGenerator("secret", "jobtracker", time.Minute)
	expiredGen.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredGen.Generate(ctx, user)
	require.NoError(t, err)

	foreign, err := NewGenerator("secret", "someone-else", time.Hour).Generate(ctx, user)
	require.NoError(t, err)

	badSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid", Issuer: "jobtracker"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID.String(), Issuer: "jobtracker"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct {
		verifier *Verifier
		token    string
	}{
		"wrong secret": {NewVerifier("other", "jobtracker"), good},
		"expired":      {NewVerifier("secret", "jobtracker"), expired},
		"issuer":       {NewVerifier("secret", "jobtracker"), foreign},
		"subject":      {NewVerifier("secret", "jobtracker"), badSub},
		"alg none":     {NewVerifier("secret", "jobtracker"), none},
		"garbage":      {NewVerifier("secret", "jobtracker"), "abc.def.ghi"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tc.verifier.Resolve(ctx, tc.token)
			assert.ErrorIs(t, err, auth.ErrInvalidCredential)
		})
	}

	_, err = NewVerifier("secret", "").Resolve(ctx, "")
	assert.ErrorIs(t, err, auth.ErrMissingCredential)
}
