package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skillswap/internal/domain/profile"
	"skillswap/internal/domain/skill"
	"skillswap/internal/pkg/validation"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type ProfileDetail struct {
	Profile profile.Profile
	Offered []skill.UserSkill
	Wanted  []skill.UserSkill
}

type UpdateProfileInput struct {
	FullName  *string `validate:"omitnil,min=1,max=100"`
	Bio       *string `validate:"omitnil,max=500"`
	AvatarURL *string `validate:"omitempty,url,max=500"`
	Location  *string `validate:"omitnil,max=100"`
}

var updateProfileMessages = validation.Messages{
	"FullName.min":  "Full name is required",
	"FullName.max":  "Full name must be at most 100 characters long",
	"Bio.max":       "Bio must be at most 500 characters long",
	"AvatarURL.url": "Avatar URL must be a valid URL",
	"AvatarURL.max": "Avatar URL must be at most 500 characters long",
	"Location.max":  "Location must be at most 100 characters long",
}

type ProfileUsecase interface {
	GetByUsername(ctx context.Context, username string) (ProfileDetail, error)
	GetMe(ctx context.Context, userID uuid.UUID) (ProfileDetail, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (profile.Profile, error)
}

type Profile struct {
	profiles   repository.ProfileRepository
	userSkills repository.UserSkillRepository
	notifier   ChangeNotifier
	logger     *log.Logger
}

func NewProfileUsecase(profiles repository.ProfileRepository, userSkills repository.UserSkillRepository, notifier ChangeNotifier, logger *log.Logger) *Profile {
	return &Profile{profiles: profiles, userSkills: userSkills, notifier: notifierOrNoop(notifier), logger: logger}
}

func (u *Profile) GetByUsername(ctx context.Context, username string) (ProfileDetail, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return ProfileDetail{}, ErrInvalidInput
	}
	p, err := u.profiles.GetByUsername(ctx, username)
	if err != nil {
		return ProfileDetail{}, u.mapProfileErr(err)
	}
	return u.detail(ctx, p)
}

func (u *Profile) GetMe(ctx context.Context, userID uuid.UUID) (ProfileDetail, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return ProfileDetail{}, u.mapProfileErr(err)
	}
	return u.detail(ctx, p)
}

func (u *Profile) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (profile.Profile, error) {
	in.FullName = trimPtr(in.FullName)
	in.Bio = trimPtr(in.Bio)
	in.AvatarURL = trimPtr(in.AvatarURL)
	in.Location = trimPtr(in.Location)

	if err := validation.Struct(in, updateProfileMessages); err != nil {
		return profile.Profile{}, err
	}

	upd := profile.Update{FullName: in.FullName, Bio: in.Bio, AvatarURL: in.AvatarURL, Location: in.Location}
	if upd.Empty() {
		return profile.Profile{}, ErrInvalidInput
	}

	p, err := u.profiles.Update(ctx, userID, upd)
	if err != nil {
		return profile.Profile{}, u.mapProfileErr(err)
	}
	u.notifier.DirectoryChanged(ctx)
	return p, nil
}

func (u *Profile) detail(ctx context.Context, p profile.Profile) (ProfileDetail, error) {
	links, err := u.userSkills.ListByUser(ctx, p.UserID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Profile] skill link query failed | user_id=%s error=%v", p.UserID, err)
		}
		return ProfileDetail{}, ErrInternal
	}

	out := ProfileDetail{Profile: p, Offered: []skill.UserSkill{}, Wanted: []skill.UserSkill{}}
	for _, l := range links {
		switch l.Type {
		case skill.TypeOffered:
			out.Offered = append(out.Offered, l)
		case skill.TypeWanted:
			out.Wanted = append(out.Wanted, l)
		}
	}
	return out, nil
}

func (u *Profile) mapProfileErr(err error) error {
	if errors.Is(err, profile.ErrNotFound) {
		return ErrProfileNotFound
	}
	if u.logger != nil {
		u.logger.Printf("[Profile] query failed: %v", err)
	}
	return ErrInternal
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
