package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Profile is created by the database when a user signs up. AvgRating and
// TotalReviews are maintained by the review trigger and never written here.
type Profile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Username     string
	FullName     string
	Bio          *string
	AvatarURL    *string
	Location     *string
	AvgRating    float64
	TotalReviews int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Update struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
	Location  *string
}

func (u Update) Empty() bool {
	return u.FullName == nil && u.Bio == nil && u.AvatarURL == nil && u.Location == nil
}
