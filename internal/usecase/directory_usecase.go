package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"skillswap/internal/domain/profile"
	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"
	"skillswap/internal/search"

	"github.com/google/uuid"
)

const DefaultDirectoryPageSize = 10

type DirectoryParams struct {
	Page  int
	Query string
	Skill string
}

// DirectoryPage is one page of the member directory. TopSkills holds the
// first offered and first wanted skill of each listed user.
type DirectoryPage struct {
	Profiles   []profile.Profile
	TopSkills  map[uuid.UUID]skill.TopSkills
	Page       int
	TotalPages int
	Total      int
}

type DirectoryUsecase interface {
	ListProfiles(ctx context.Context, params DirectoryParams) (DirectoryPage, error)
	Invalidate(ctx context.Context)
}

type DirectoryConfig struct {
	PageSize int
	CacheTTL time.Duration
}

type Directory struct {
	profiles   repository.ProfileRepository
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
	cache      PageCache
	skillIDs   LocalCache
	cfg        DirectoryConfig
	logger     *log.Logger
}

func NewDirectoryUsecase(
	profiles repository.ProfileRepository,
	skills repository.SkillRepository,
	userSkills repository.UserSkillRepository,
	cache PageCache,
	skillIDs LocalCache,
	cfg DirectoryConfig,
	logger *log.Logger,
) *Directory {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultDirectoryPageSize
	}
	return &Directory{
		profiles:   profiles,
		skills:     skills,
		userSkills: userSkills,
		cache:      cache,
		skillIDs:   skillIDs,
		cfg:        cfg,
		logger:     logger,
	}
}

// TotalPages is ceil(count/size), never less than 1.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ReduceTopSkills keeps, per user, the first offered and the first wanted
// link in the order given. Later duplicates are ignored.
func ReduceTopSkills(links []skill.UserSkill) map[uuid.UUID]skill.TopSkills {
	out := make(map[uuid.UUID]skill.TopSkills)
	for _, l := range links {
		top := out[l.UserID]
		ref := &skill.Ref{ID: l.SkillID, Name: l.SkillName, Category: l.SkillCategory}
		switch l.Type {
		case skill.TypeOffered:
			if top.Offered == nil {
				top.Offered = ref
			}
		case skill.TypeWanted:
			if top.Wanted == nil {
				top.Wanted = ref
			}
		default:
			continue
		}
		out[l.UserID] = top
	}
	return out
}

func emptyDirectoryPage(page int) DirectoryPage {
	return DirectoryPage{
		Profiles:   []profile.Profile{},
		TopSkills:  map[uuid.UUID]skill.TopSkills{},
		Page:       page,
		TotalPages: 1,
		Total:      0,
	}
}

func (u *Directory) ListProfiles(ctx context.Context, params DirectoryParams) (DirectoryPage, error) {
	if params.Page < 1 {
		return DirectoryPage{}, ErrInvalidInput
	}
	params.Query = search.Normalize(params.Query)
	params.Skill = search.Normalize(params.Skill)
	size := u.cfg.PageSize
	if params.Page-1 > math.MaxInt/size {
		return DirectoryPage{}, ErrInvalidInput
	}

	cacheKey := DirectoryCacheKey(params, size)
	if u.cache != nil {
		var cached DirectoryPage
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logf("[Directory] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logf("[Directory] Cache MISS: %s", cacheKey)
	}

	f := repository.ProfileFilter{
		Query:  params.Query,
		Limit:  size,
		Offset: (params.Page - 1) * size,
	}

	if params.Skill != "" {
		ids, err := u.offeringUsers(ctx, params.Skill)
		if err != nil {
			u.logf("[Directory] skill filter lookup failed | skill=%q error=%v", params.Skill, err)
			return DirectoryPage{}, ErrInternal
		}
		if len(ids) == 0 {
			return emptyDirectoryPage(params.Page), nil
		}
		f.UserIDs = ids
		f.RestrictToUserIDs = true
	}

	rows, total, err := u.profiles.List(ctx, f)
	if err != nil {
		u.logf("[Directory] profile query failed | page=%d q=%q error=%v", params.Page, params.Query, err)
		return DirectoryPage{}, ErrInternal
	}

	userIDs := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		userIDs = append(userIDs, p.UserID)
	}
	links, err := u.userSkills.ListForUsers(ctx, userIDs)
	if err != nil {
		u.logf("[Directory] skill link query failed | users=%d error=%v", len(userIDs), err)
		return DirectoryPage{}, ErrInternal
	}

	out := DirectoryPage{
		Profiles:   rows,
		TopSkills:  ReduceTopSkills(links),
		Page:       params.Page,
		TotalPages: TotalPages(total, size),
		Total:      total,
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.cfg.CacheTTL); err == nil {
			u.logf("[Directory] Cache SET: %s", cacheKey)
		}
	}
	return out, nil
}

// offeringUsers resolves a skill name to the users offering it. An unknown
// skill yields no users and no error.
func (u *Directory) offeringUsers(ctx context.Context, name string) ([]uuid.UUID, error) {
	key := skillLookupKey(name)

	var skillID uuid.UUID
	if v, ok := u.lookupSkill(key); ok {
		skillID = v
	} else {
		id, err := u.skills.FindIDByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrSkillNotFound) {
				return nil, nil
			}
			return nil, err
		}
		skillID = id
		if u.skillIDs != nil {
			u.skillIDs.Set(key, id)
		}
	}

	return u.userSkills.UserIDsBySkill(ctx, skillID, skill.TypeOffered)
}

func (u *Directory) lookupSkill(key string) (uuid.UUID, bool) {
	if u.skillIDs == nil {
		return uuid.Nil, false
	}
	v, ok := u.skillIDs.Get(key)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Invalidate drops every cached directory page.
func (u *Directory) Invalidate(ctx context.Context) {
	if u == nil || u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, directoryCachePattern); err != nil {
		u.logf("[Directory] cache invalidation failed: %v", err)
		return
	}
	u.logf("[Directory] Cache INVALIDATED")
}

func (u *Directory) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
