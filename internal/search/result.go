package search

import (
	"github.com/google/uuid"
)

type Kind string

const (
	KindSkill   Kind = "skill"
	KindProfile Kind = "profile"
)

type SkillHit struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
}

type ProfileHit struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// Result is one row of the merged search list. Exactly one of Skill or
// Profile is set, matching Kind.
type Result struct {
	Kind    Kind        `json:"kind"`
	Skill   *SkillHit   `json:"skill,omitempty"`
	Profile *ProfileHit `json:"profile,omitempty"`
}

// Merge concatenates skill hits before profile hits. There is no ranking
// across the two kinds.
func Merge(skills []SkillHit, profiles []ProfileHit) []Result {
	out := make([]Result, 0, len(skills)+len(profiles))
	for i := range skills {
		out = append(out, Result{Kind: KindSkill, Skill: &skills[i]})
	}
	for i := range profiles {
		out = append(out, Result{Kind: KindProfile, Profile: &profiles[i]})
	}
	return out
}
