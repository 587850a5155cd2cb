package models

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContact is a person to reach during a severe flare
type EmergencyContact struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Relationship string    `json:"relationship" db:"relationship"`
	Phone        string    `json:"phone" db:"phone"`
	Email        string    `json:"email,omitempty" db:"email"`
	IsPrimary    bool      `json:"is_primary" db:"is_primary"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewEmergencyContact creates a contact record
func NewEmergencyContact(name, relationship, phone string) *EmergencyContact {
	now := time.Now()
	return &EmergencyContact{
		ID:           uuid.New(),
		Name:         name,
		Relationship: relationship,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
