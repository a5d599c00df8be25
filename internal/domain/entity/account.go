// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Role represents the application-level role of an account.
type Role string

const (
	// RoleUser indicates a regular feeder owner.
	RoleUser Role = "user"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// PetProfile holds the pet attributes attached to an account.
type PetProfile struct {
	Name     string  `json:"name"`
	Breed    string  `json:"breed"`
	AgeYears int     `json:"age_years"`
	WeightKg float64 `json:"weight_kg"`
}

// UserAccount is the application-level view of an authenticated identity.
// Its ID equals the identity provider subject, so one auth user maps to
// exactly one account document.
type UserAccount struct {
	UID         string      `json:"uid"`          // Identity provider subject, also the document key.
	Email       string      `json:"email"`        // Primary contact email from the identity provider.
	DisplayName string      `json:"display_name"` // Name shown in the dashboard.
	Role        Role        `json:"role"`         // Defaults to RoleUser when absent.
	DeviceID    string      `json:"device_id"`    // Linked feeder id; empty when no feeder is linked.
	FCMToken    string      `json:"fcm_token"`    // Push notification token of the user's browser/app.
	Pet         *PetProfile `json:"pet,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// HasLinkedDevice reports whether the account currently owns a feeder.
func (a *UserAccount) HasLinkedDevice() bool {
	return a.DeviceID != "" && a.DeviceID != NullOwnerSentinel
}

// NormalizeRole applies the role default for records written before roles existed.
func (a *UserAccount) NormalizeRole() {
	if !a.Role.IsValid() {
		a.Role = RoleUser
	}
}
