// Package model contains the persistence representations of the domain
// entities, kept separate so storage tags never leak into the domain layer.
package model

import "time"

// PetProfileModel is the embedded pet document fragment.
type PetProfileModel struct {
	Name     string  `firestore:"name"`
	Breed    string  `firestore:"breed"`
	AgeYears int     `firestore:"ageYears"`
	WeightKg float64 `firestore:"weightKg"`
}

// AccountModel is the Firestore document for a user account. The document id
// is the identity provider subject, so it is not stored inside the document.
type AccountModel struct {
	UID         string           `firestore:"-"`
	Email       string           `firestore:"email"`
	DisplayName string           `firestore:"displayName"`
	Role        string           `firestore:"role"`
	DeviceID    string           `firestore:"deviceId"`
	FCMToken    string           `firestore:"fcmToken"`
	Pet         *PetProfileModel `firestore:"pet,omitempty"`
	CreatedAt   time.Time        `firestore:"createdAt"`
	UpdatedAt   time.Time        `firestore:"updatedAt,serverTimestamp"`
}
