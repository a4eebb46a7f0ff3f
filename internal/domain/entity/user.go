// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a registered account.
// PasswordHash is kept here for credential checks but must never be
// serialized to clients; the delivery layer maps users to profile DTOs.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, generated by the store.
	Name         string    // The user's display name.
	Email        string    // The login identifier. Unique, stored lower-cased.
	PasswordHash string    // The bcrypt hash of the user's password. Never the plaintext.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
