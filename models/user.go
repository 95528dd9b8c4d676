package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer account backed by a Google identity.
// UID is the system-generated primary key and is immutable once assigned;
// GoogleID is the issuer-scoped subject that maps the external identity to
// this record and is unique across users.
type User struct {
	UID         uuid.UUID `json:"uid" db:"uid"`
	Email       string    `json:"email" db:"email"`
	GoogleID    string    `json:"googleId,omitempty" db:"google_id"`
	DisplayName string    `json:"displayName,omitempty" db:"display_name"`
	PhotoURL    string    `json:"photoURL,omitempty" db:"photo_url"`
	LastLogin   time.Time `json:"lastLogin" db:"last_login"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User for a first-seen Google identity.
// created_at and last_login both start at now.
func NewUser(googleID, email, displayName, photoURL string) *User {
	now := time.Now().UTC()
	return &User{
		UID:         uuid.New(),
		Email:       email,
		GoogleID:    googleID,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		LastLogin:   now,
		CreatedAt:   now,
	}
}
