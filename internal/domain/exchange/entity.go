package exchange

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("skill request not found")
	ErrInvalidStatus     = errors.New("invalid request status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusCompleted || s == StatusCancelled
}

// Role is the caller's side of a request.
type Role int

const (
	RoleNone Role = iota
	RoleRequester
	RoleProvider
)

type SkillRequest struct {
	ID               uuid.UUID
	RequesterID      uuid.UUID
	ProviderID       uuid.UUID
	RequestedSkillID uuid.UUID
	OfferedSkillID   *uuid.UUID
	Message          string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r SkillRequest) RoleOf(userID uuid.UUID) Role {
	switch userID {
	case r.RequesterID:
		return RoleRequester
	case r.ProviderID:
		return RoleProvider
	default:
		return RoleNone
	}
}

func (r SkillRequest) Involves(a, b uuid.UUID) bool {
	return (r.RequesterID == a && r.ProviderID == b) || (r.RequesterID == b && r.ProviderID == a)
}

// CanTransition reports whether a participant acting as role may move a
// request from one status to another.
//
//	pending  -> accepted | declined   provider only
//	pending  -> cancelled             requester only
//	accepted -> completed | cancelled either side
func CanTransition(from, to Status, role Role) bool {
	if role == RoleNone || from.Terminal() {
		return false
	}
	switch from {
	case StatusPending:
		switch to {
		case StatusAccepted, StatusDeclined:
			return role == RoleProvider
		case StatusCancelled:
			return role == RoleRequester
		}
	case StatusAccepted:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}
