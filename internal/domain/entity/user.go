// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account.
// A user with the vendor role also owns a Vendor entity.
type User struct {
	ID           uuid.UUID `json:"id"`    // The Global Unique Identifier (GUID) for the user.
	Email        string    `json:"email"` // The user's primary contact email, used as the login identifier.
	PasswordHash string    `json:"-"`     // Bcrypt hash of the login password; never serialized.
	Name         string    `json:"name"`       // The user's display name.
	Phone        string    `json:"phone"`      // Optional contact phone number.
	Role         Role      `json:"role"`       // The account role (buyer, vendor, admin).
	Avatar       string    `json:"avatar"`     // Optional avatar image URL.
	IsActive     bool      `json:"is_active"`  // Suspended accounts are flipped to false by an admin.
	CreatedAt    time.Time `json:"created_at"` // Timestamp of when this account was created.
	UpdatedAt    time.Time `json:"updated_at"` // Timestamp of the last modification.
}
