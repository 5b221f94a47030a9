package jwt

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/auth"
)

// Verifier validates tokens issued by Generator and implements auth.Resolver.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, expectedIssuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: expectedIssuer}
}

// Resolve returns the subject of a valid token. Malformed, expired, foreign
// issuer and non-uuid subjects all answer auth.ErrInvalidCredential.
func (v *Verifier) Resolve(_ context.Context, tokenStr string) (uuid.UUID, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return uuid.Nil, auth.ErrMissingCredential
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return uuid.Nil, auth.ErrInvalidCredential
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return uuid.Nil, auth.ErrInvalidCredential
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, auth.ErrInvalidCredential
	}
	return id, nil
}
