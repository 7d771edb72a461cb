package usecase

import (
	"context"
	"log"

	"skillswap/internal/domain/profile"
	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"
	"skillswap/internal/search"

	"golang.org/x/sync/errgroup"
)

const DefaultSearchLimit = 5

type SearchUsecase interface {
	Search(ctx context.Context, text string) ([]search.Result, error)
}

type Search struct {
	skills   repository.SkillRepository
	profiles repository.ProfileRepository
	limit    int
	logger   *log.Logger
}

func NewSearchUsecase(skills repository.SkillRepository, profiles repository.ProfileRepository, limit int, logger *log.Logger) *Search {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &Search{skills: skills, profiles: profiles, limit: limit, logger: logger}
}

// Search runs the skill and profile queries concurrently and returns skill
// hits followed by profile hits. Blank input returns an empty list without
// touching the database.
func (u *Search) Search(ctx context.Context, text string) ([]search.Result, error) {
	if search.IsBlank(text) {
		return []search.Result{}, nil
	}
	q := search.Normalize(text)

	var (
		skills   []skill.Skill
		profiles []profile.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skills, err = u.skills.Search(gctx, q, u.limit)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = u.profiles.Search(gctx, q, u.limit)
		return err
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if u.logger != nil {
			u.logger.Printf("[Search] query failed | q=%q error=%v", q, err)
		}
		return nil, ErrInternal
	}

	if len(skills) > u.limit {
		skills = skills[:u.limit]
	}
	if len(profiles) > u.limit {
		profiles = profiles[:u.limit]
	}

	skillHits := make([]search.SkillHit, 0, len(skills))
	for _, s := range skills {
		skillHits = append(skillHits, search.SkillHit{
			ID:          s.ID,
			Name:        s.Name,
			Category:    string(s.Category),
			Description: s.Description,
		})
	}
	profileHits := make([]search.ProfileHit, 0, len(profiles))
	for _, p := range profiles {
		profileHits = append(profileHits, search.ProfileHit{
			ID:        p.ID,
			UserID:    p.UserID,
			Username:  p.Username,
			FullName:  p.FullName,
			AvatarURL: p.AvatarURL,
		})
	}

	return search.Merge(skillHits, profileHits), nil
}
