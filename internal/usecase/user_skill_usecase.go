package usecase

import (
	"context"
	"errors"
	"log"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type AddUserSkillInput struct {
	SkillID          uuid.UUID
	Type             string
	ProficiencyLevel *int16
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (skill.UserSkill, error)
	DeleteUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error
}

type UserSkill struct {
	repo     repository.UserSkillRepository
	skills   repository.SkillRepository
	notifier ChangeNotifier
	logger   *log.Logger
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, skills repository.SkillRepository, notifier ChangeNotifier, logger *log.Logger) *UserSkill {
	return &UserSkill{repo: repo, skills: skills, notifier: notifierOrNoop(notifier), logger: logger}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logf("[UserSkills] list failed | user_id=%s error=%v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (skill.UserSkill, error) {
	if in.SkillID == uuid.Nil {
		return skill.UserSkill{}, ErrInvalidInput
	}
	typ, err := skill.ParseType(in.Type)
	if err != nil {
		return skill.UserSkill{}, ErrInvalidSkillType
	}
	if in.ProficiencyLevel != nil && !skill.ValidProficiency(*in.ProficiencyLevel) {
		return skill.UserSkill{}, ErrInvalidProficiencyLevel
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		u.logf("[UserSkills] skill lookup failed | skill_id=%s error=%v", in.SkillID, err)
		return skill.UserSkill{}, ErrInternal
	}
	if !exists {
		return skill.UserSkill{}, ErrSkillNotFound
	}

	created, err := u.repo.Create(ctx, skill.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          in.SkillID,
		Type:             typ,
		ProficiencyLevel: in.ProficiencyLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillExists):
			return skill.UserSkill{}, ErrUserSkillAlreadyExists
		case errors.Is(err, repository.ErrSkillNotFound):
			return skill.UserSkill{}, ErrSkillNotFound
		default:
			u.logf("[UserSkills] create failed | user_id=%s error=%v", userID, err)
			return skill.UserSkill{}, ErrInternal
		}
	}

	u.notifier.DirectoryChanged(ctx)
	return created, nil
}

func (u *UserSkill) DeleteUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error {
	if userSkillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userSkillID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillNotFound):
			return ErrUserSkillNotFound
		case errors.Is(err, repository.ErrUserSkillForbidden):
			return ErrForbidden
		default:
			u.logf("[UserSkills] delete failed | id=%s error=%v", userSkillID, err)
			return ErrInternal
		}
	}

	u.notifier.DirectoryChanged(ctx)
	return nil
}

func (u *UserSkill) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
