package dto

import (
	"time"

	"skillswap/internal/domain/profile"
	"skillswap/internal/domain/skill"
	"skillswap/internal/usecase"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatar_url"`
	Location     *string   `json:"location"`
	AvgRating    float64   `json:"avg_rating"`
	TotalReviews int       `json:"total_reviews"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileCardResponse is one directory entry.
type ProfileCardResponse struct {
	ProfileResponse
	OfferedSkill *SkillRefResponse `json:"offered_skill"`
	WantedSkill  *SkillRefResponse `json:"wanted_skill"`
}

type DirectoryResponse struct {
	Profiles   []ProfileCardResponse `json:"profiles"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	Total      int                   `json:"total"`
}

type ProfileDetailResponse struct {
	ProfileResponse
	OfferedSkills []UserSkillResponse `json:"offered_skills"`
	WantedSkills  []UserSkillResponse `json:"wanted_skills"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Username:     p.Username,
		FullName:     p.FullName,
		Bio:          p.Bio,
		AvatarURL:    p.AvatarURL,
		Location:     p.Location,
		AvgRating:    p.AvgRating,
		TotalReviews: p.TotalReviews,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewDirectoryResponse(page usecase.DirectoryPage) DirectoryResponse {
	cards := make([]ProfileCardResponse, 0, len(page.Profiles))
	for _, p := range page.Profiles {
		var top skill.TopSkills
		if page.TopSkills != nil {
			top = page.TopSkills[p.UserID]
		}
		cards = append(cards, ProfileCardResponse{
			ProfileResponse: NewProfileResponse(p),
			OfferedSkill:    NewSkillRefResponse(top.Offered),
			WantedSkill:     NewSkillRefResponse(top.Wanted),
		})
	}
	return DirectoryResponse{
		Profiles:   cards,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	}
}

func NewProfileDetailResponse(d usecase.ProfileDetail) ProfileDetailResponse {
	return ProfileDetailResponse{
		ProfileResponse: NewProfileResponse(d.Profile),
		OfferedSkills:   NewUserSkillResponses(d.Offered),
		WantedSkills:    NewUserSkillResponses(d.Wanted),
	}
}
