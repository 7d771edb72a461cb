package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/profile"
	"skillswap/internal/domain/review"
	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	mu sync.Mutex

	all       []profile.Profile
	listErr   error
	searchErr error

	listCalls   []repository.ProfileFilter
	searchCalls []string
	updates     []profile.Update
}

// List mimics the Postgres implementation: all is assumed to be ordered
// newest first.
func (m *mockProfileRepo) List(_ context.Context, f repository.ProfileFilter) ([]profile.Profile, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls = append(m.listCalls, f)
	if m.listErr != nil {
		return nil, 0, m.listErr
	}

	allowed := map[uuid.UUID]bool{}
	for _, id := range f.UserIDs {
		allowed[id] = true
	}
	matched := make([]profile.Profile, 0)
	for _, p := range m.all {
		if f.RestrictToUserIDs && !allowed[p.UserID] {
			continue
		}
		if f.Query != "" && !containsFold(p.Username, f.Query) && !containsFold(p.FullName, f.Query) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	if f.Offset >= total {
		return []profile.Profile{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (m *mockProfileRepo) Search(_ context.Context, text string, limit int) ([]profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = append(m.searchCalls, text)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	out := make([]profile.Profile, 0)
	for _, p := range m.all {
		if containsFold(p.Username, text) || containsFold(p.FullName, text) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockProfileRepo) GetByUsername(_ context.Context, username string) (profile.Profile, error) {
	for _, p := range m.all {
		if strings.EqualFold(p.Username, username) {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	for _, p := range m.all {
		if p.UserID == userID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (m *mockProfileRepo) Update(_ context.Context, userID uuid.UUID, in profile.Update) (profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, in)
	for i, p := range m.all {
		if p.UserID != userID {
			continue
		}
		if in.FullName != nil {
			p.FullName = *in.FullName
		}
		if in.Bio != nil {
			p.Bio = in.Bio
		}
		if in.AvatarURL != nil {
			p.AvatarURL = in.AvatarURL
		}
		if in.Location != nil {
			p.Location = in.Location
		}
		m.all[i] = p
		return p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (m *mockProfileRepo) listCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listCalls)
}

type mockSkillRepo struct {
	mu sync.Mutex

	byName    map[string]uuid.UUID
	items     []skill.Skill
	searchErr error
	createErr error

	findCalls   []string
	searchCalls []string
	created     []skill.Skill
}

func (m *mockSkillRepo) FindIDByName(_ context.Context, name string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls = append(m.findCalls, name)
	if id, ok := m.byName[strings.ToLower(name)]; ok {
		return id, nil
	}
	return uuid.Nil, repository.ErrSkillNotFound
}

func (m *mockSkillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, s := range m.items {
		if s.ID == id {
			return true, nil
		}
	}
	for _, v := range m.byName {
		if v == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSkillRepo) Search(_ context.Context, text string, limit int) ([]skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = append(m.searchCalls, text)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	out := make([]skill.Skill, 0)
	for _, s := range m.items {
		if containsFold(s.Name, text) {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockSkillRepo) List(_ context.Context, category *skill.Category) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	for _, s := range m.items {
		if category != nil && s.Category != *category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSkillRepo) Create(_ context.Context, s skill.Skill) (skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return skill.Skill{}, m.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().UTC()
	m.created = append(m.created, s)
	return s, nil
}

func (m *mockSkillRepo) findCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.findCalls)
}

type mockUserSkillRepo struct {
	mu sync.Mutex

	links     []skill.UserSkill
	createErr error
	deleteErr error

	bySkillCalls int
	listCalls    [][]uuid.UUID
	created      []skill.UserSkill
	deleted      []uuid.UUID
}

func (m *mockUserSkillRepo) UserIDsBySkill(_ context.Context, skillID uuid.UUID, t skill.Type) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySkillCalls++
	seen := map[uuid.UUID]bool{}
	out := make([]uuid.UUID, 0)
	for _, l := range m.links {
		if l.SkillID == skillID && l.Type == t && !seen[l.UserID] {
			seen[l.UserID] = true
			out = append(out, l.UserID)
		}
	}
	return out, nil
}

func (m *mockUserSkillRepo) ListForUsers(_ context.Context, userIDs []uuid.UUID) ([]skill.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls = append(m.listCalls, userIDs)
	want := map[uuid.UUID]bool{}
	for _, id := range userIDs {
		want[id] = true
	}
	out := make([]skill.UserSkill, 0)
	for _, l := range m.links {
		if want[l.UserID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockUserSkillRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	out := make([]skill.UserSkill, 0)
	for _, l := range m.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockUserSkillRepo) Create(_ context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return skill.UserSkill{}, m.createErr
	}
	if us.ID == uuid.Nil {
		us.ID = uuid.New()
	}
	m.created = append(m.created, us)
	m.links = append(m.links, us)
	return us, nil
}

func (m *mockUserSkillRepo) Delete(_ context.Context, id uuid.UUID, _ uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockSkillRequestRepo struct {
	items     map[uuid.UUID]exchange.SkillRequest
	createErr error
	created   []exchange.SkillRequest
	updates   []exchange.Status
}

func newMockSkillRequestRepo(items ...exchange.SkillRequest) *mockSkillRequestRepo {
	m := &mockSkillRequestRepo{items: map[uuid.UUID]exchange.SkillRequest{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *mockSkillRequestRepo) Create(_ context.Context, req exchange.SkillRequest) (exchange.SkillRequest, error) {
	if m.createErr != nil {
		return exchange.SkillRequest{}, m.createErr
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = exchange.StatusPending
	m.items[req.ID] = req
	m.created = append(m.created, req)
	return req, nil
}

func (m *mockSkillRequestRepo) GetByID(_ context.Context, id uuid.UUID) (exchange.SkillRequest, error) {
	it, ok := m.items[id]
	if !ok {
		return exchange.SkillRequest{}, exchange.ErrNotFound
	}
	return it, nil
}

func (m *mockSkillRequestRepo) ListForUser(_ context.Context, userID uuid.UUID, box repository.RequestBox) ([]exchange.SkillRequest, error) {
	out := make([]exchange.SkillRequest, 0)
	for _, it := range m.items {
		if box == repository.BoxIncoming && it.ProviderID == userID {
			out = append(out, it)
		}
		if box == repository.BoxOutgoing && it.RequesterID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockSkillRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to exchange.Status) (exchange.SkillRequest, error) {
	it, ok := m.items[id]
	if !ok {
		return exchange.SkillRequest{}, exchange.ErrNotFound
	}
	if it.Status != from {
		return exchange.SkillRequest{}, exchange.ErrInvalidTransition
	}
	it.Status = to
	m.items[id] = it
	m.updates = append(m.updates, to)
	return it, nil
}

type mockReviewRepo struct {
	createErr error
	created   []review.Review
	items     []review.Review
}

func (m *mockReviewRepo) Create(_ context.Context, rv review.Review) (review.Review, error) {
	if m.createErr != nil {
		return review.Review{}, m.createErr
	}
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	m.created = append(m.created, rv)
	return rv, nil
}

func (m *mockReviewRepo) ListForReviewee(_ context.Context, revieweeID uuid.UUID, _ int) ([]review.Review, error) {
	out := make([]review.Review, 0)
	for _, rv := range m.items {
		if rv.RevieweeID == revieweeID {
			out = append(out, rv)
		}
	}
	return out, nil
}

type memoryPageCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	patterns []string
}

func newMemoryPageCache() *memoryPageCache {
	return &memoryPageCache{data: map[string][]byte{}}
}

func (m *memoryPageCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memoryPageCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

func (m *memoryPageCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memoryPageCache) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

type memoryLocalCache struct {
	data map[string]any
}

func (m *memoryLocalCache) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryLocalCache) Set(key string, value any) {
	if m.data == nil {
		m.data = map[string]any{}
	}
	m.data[key] = value
}

type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) DirectoryChanged(context.Context) {
	n.mu.Lock()
	n.count++
	n.mu.Unlock()
}

func (n *countingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func strPtr(s string) *string { return &s }
