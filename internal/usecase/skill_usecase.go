package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"
)

type CreateSkillInput struct {
	Name        string
	Category    string
	Description string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	AddSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error)
}

type Skill struct {
	repo   repository.SkillRepository
	logger *log.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, logger *log.Logger) *Skill {
	return &Skill{repo: repo, logger: logger}
}

// ListSkills returns the catalog, optionally restricted to one category.
func (u *Skill) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	var filter *skill.Category
	if strings.TrimSpace(category) != "" {
		c, err := skill.ParseCategory(category)
		if err != nil {
			return nil, ErrInvalidCategory
		}
		filter = &c
	}

	items, err := u.repo.List(ctx, filter)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Skills] list failed: %v", err)
		}
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" || len(name) > 100 {
		return skill.Skill{}, ErrInvalidInput
	}
	category, err := skill.ParseCategory(in.Category)
	if err != nil {
		return skill.Skill{}, ErrInvalidCategory
	}

	s := skill.Skill{Name: name, Category: category}
	if d := strings.TrimSpace(in.Description); d != "" {
		if len(d) > 500 {
			return skill.Skill{}, ErrInvalidInput
		}
		s.Description = &d
	}

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		if errors.Is(err, repository.ErrSkillExists) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		if u.logger != nil {
			u.logger.Printf("[Skills] create failed | name=%q error=%v", name, err)
		}
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}
