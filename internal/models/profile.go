package models

import "time"

// Profile represents a locally persisted user. The ID is the opaque subject
// string issued by the identity provider for token-provisioned profiles, or a
// generated UUID for profiles created through registration.
type Profile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
