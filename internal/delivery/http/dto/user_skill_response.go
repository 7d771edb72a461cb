package dto

import (
	"time"

	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type SkillRefResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type UserSkillResponse struct {
	ID               uuid.UUID `json:"id"`
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	SkillCategory    string    `json:"skill_category"`
	Type             string    `json:"type"`
	ProficiencyLevel *int16    `json:"proficiency_level"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    string(s.Category),
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func NewSkillRefResponse(r *skill.Ref) *SkillRefResponse {
	if r == nil {
		return nil
	}
	return &SkillRefResponse{ID: r.ID, Name: r.Name, Category: string(r.Category)}
}

func NewUserSkillResponse(us skill.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		ID:               us.ID,
		SkillID:          us.SkillID,
		SkillName:        us.SkillName,
		SkillCategory:    string(us.SkillCategory),
		Type:             string(us.Type),
		ProficiencyLevel: us.ProficiencyLevel,
		CreatedAt:        us.CreatedAt,
	}
}

func NewUserSkillResponses(items []skill.UserSkill) []UserSkillResponse {
	out := make([]UserSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewUserSkillResponse(it))
	}
	return out
}
