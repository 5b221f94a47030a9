package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = BearerToken("bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingCredential)
	_, err = BearerToken("   ")
	assert.ErrorIs(t, err, ErrMissingCredential)

	for _, h := range []string{"abc.def", "Basic dXNlcg==", "Bearer ", "Bearer a b", "Token abc"} {
		_, err = BearerToken(h)
		assert.ErrorIs(t, err, ErrInvalidCredential, h)
	}
}
