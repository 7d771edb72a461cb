package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Metadata     Metadata
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Metadata is stored as JSON on the user row and read by the profile
// creation trigger.
type Metadata struct {
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}
