package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Review struct {
	ID             uuid.UUID
	ReviewerID     uuid.UUID
	RevieweeID     uuid.UUID
	SkillRequestID *uuid.UUID
	Rating         int16
	Comment        string
	CreatedAt      time.Time

	ReviewerUsername string
}

func ValidRating(r int16) bool {
	return r >= 1 && r <= 5
}
