package dto

import (
	"time"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/review"

	"github.com/google/uuid"
)

type SkillRequestResponse struct {
	ID               uuid.UUID  `json:"id"`
	RequesterID      uuid.UUID  `json:"requester_id"`
	ProviderID       uuid.UUID  `json:"provider_id"`
	RequestedSkillID uuid.UUID  `json:"requested_skill_id"`
	OfferedSkillID   *uuid.UUID `json:"offered_skill_id"`
	Message          string     `json:"message"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ReviewResponse struct {
	ID               uuid.UUID  `json:"id"`
	ReviewerID       uuid.UUID  `json:"reviewer_id"`
	ReviewerUsername string     `json:"reviewer_username,omitempty"`
	RevieweeID       uuid.UUID  `json:"reviewee_id"`
	SkillRequestID   *uuid.UUID `json:"skill_request_id"`
	Rating           int16      `json:"rating"`
	Comment          string     `json:"comment"`
	CreatedAt        time.Time  `json:"created_at"`
}

func NewSkillRequestResponse(r exchange.SkillRequest) SkillRequestResponse {
	return SkillRequestResponse{
		ID:               r.ID,
		RequesterID:      r.RequesterID,
		ProviderID:       r.ProviderID,
		RequestedSkillID: r.RequestedSkillID,
		OfferedSkillID:   r.OfferedSkillID,
		Message:          r.Message,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func NewReviewResponse(r review.Review) ReviewResponse {
	return ReviewResponse{
		ID:               r.ID,
		ReviewerID:       r.ReviewerID,
		ReviewerUsername: r.ReviewerUsername,
		RevieweeID:       r.RevieweeID,
		SkillRequestID:   r.SkillRequestID,
		Rating:           r.Rating,
		Comment:          r.Comment,
		CreatedAt:        r.CreatedAt,
	}
}
