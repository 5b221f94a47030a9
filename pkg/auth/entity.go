package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a system user. Local accounts carry a
// password hash; accounts from an external identity provider carry its
// subject in ExternalID instead.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ExternalID   *string   `json:"externalId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
