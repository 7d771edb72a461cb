package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/profile"
	"skillswap/internal/domain/review"
	"skillswap/internal/domain/skill"
	"skillswap/internal/pkg/validation"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

func TestProfile_GetByUsernameSplitsSkills(t *testing.T) {
	p := profile.Profile{ID: uuid.New(), UserID: uuid.New(), Username: "ana"}
	links := &mockUserSkillRepo{links: []skill.UserSkill{
		{UserID: p.UserID, SkillName: "Guitar", Type: skill.TypeOffered},
		{UserID: p.UserID, SkillName: "Spanish", Type: skill.TypeWanted},
		{UserID: p.UserID, SkillName: "Piano", Type: skill.TypeOffered},
	}}
	uc := NewProfileUsecase(&mockProfileRepo{all: []profile.Profile{p}}, links, nil, nil)

	d, err := uc.GetByUsername(context.Background(), "ANA")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(d.Offered) != 2 || len(d.Wanted) != 1 {
		t.Fatalf("expected 2 offered and 1 wanted, got %d/%d", len(d.Offered), len(d.Wanted))
	}

	_, err = uc.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfile_UpdateMeValidatesAndNotifies(t *testing.T) {
	p := profile.Profile{ID: uuid.New(), UserID: uuid.New(), Username: "ana", FullName: "Ana"}
	repo := &mockProfileRepo{all: []profile.Profile{p}}
	n := &countingNotifier{}
	uc := NewProfileUsecase(repo, &mockUserSkillRepo{}, n, nil)

	_, err := uc.UpdateMe(context.Background(), p.UserID, UpdateProfileInput{FullName: strPtr("   ")})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Message != "Full name is required" {
		t.Fatalf("expected full name validation error, got %v", err)
	}
	_, err = uc.UpdateMe(context.Background(), p.UserID, UpdateProfileInput{AvatarURL: strPtr("not a url")})
	if !errors.As(err, &verr) || verr.Message != "Avatar URL must be a valid URL" {
		t.Fatalf("expected avatar validation error, got %v", err)
	}
	_, err = uc.UpdateMe(context.Background(), p.UserID, UpdateProfileInput{Bio: strPtr(strings.Repeat("x", 501))})
	if !errors.As(err, &verr) {
		t.Fatalf("expected bio validation error, got %v", err)
	}
	if len(repo.updates) != 0 || n.calls() != 0 {
		t.Fatalf("invalid input must not reach the repository")
	}

	_, err = uc.UpdateMe(context.Background(), p.UserID, UpdateProfileInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty update, got %v", err)
	}

	updated, err := uc.UpdateMe(context.Background(), p.UserID, UpdateProfileInput{
		FullName:  strPtr(" Ana Maria "),
		AvatarURL: strPtr("https://example.com/a.png"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.FullName != "Ana Maria" {
		t.Fatalf("expected trimmed name, got %q", updated.FullName)
	}
	if n.calls() != 1 {
		t.Fatalf("expected one directory notification, got %d", n.calls())
	}
}

func TestSkill_AddSkill(t *testing.T) {
	repo := &mockSkillRepo{}
	uc := NewSkillUsecase(repo, nil)

	if _, err := uc.AddSkill(context.Background(), CreateSkillInput{Name: " ", Category: "music"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.AddSkill(context.Background(), CreateSkillInput{Name: "Lute", Category: "medieval"}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	s, err := uc.AddSkill(context.Background(), CreateSkillInput{Name: "  Jazz   Piano ", Category: "Music"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Name != "Jazz Piano" || s.Category != skill.CategoryMusic || s.Description != nil {
		t.Fatalf("unexpected skill %+v", s)
	}

	repo.createErr = repository.ErrSkillExists
	if _, err := uc.AddSkill(context.Background(), CreateSkillInput{Name: "Jazz Piano", Category: "music"}); !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}
}

func TestSkill_ListSkillsCategory(t *testing.T) {
	repo := &mockSkillRepo{items: []skill.Skill{
		{ID: uuid.New(), Name: "Go", Category: skill.CategoryTechnology},
		{ID: uuid.New(), Name: "Salsa", Category: skill.CategorySports},
	}}
	uc := NewSkillUsecase(repo, nil)

	items, err := uc.ListSkills(context.Background(), "technology")
	if err != nil || len(items) != 1 || items[0].Name != "Go" {
		t.Fatalf("unexpected result %v %+v", err, items)
	}
	if _, err := uc.ListSkills(context.Background(), "nope"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestUserSkill_AddAndDelete(t *testing.T) {
	guitar := uuid.New()
	skills := &mockSkillRepo{items: []skill.Skill{{ID: guitar, Name: "Guitar"}}}
	links := &mockUserSkillRepo{}
	n := &countingNotifier{}
	uc := NewUserSkillUsecase(links, skills, n, nil)
	userID := uuid.New()

	bad := int16(6)
	if _, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: guitar, Type: "offered", ProficiencyLevel: &bad}); !errors.Is(err, ErrInvalidProficiencyLevel) {
		t.Fatalf("expected ErrInvalidProficiencyLevel, got %v", err)
	}
	if _, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: guitar, Type: "teaching"}); !errors.Is(err, ErrInvalidSkillType) {
		t.Fatalf("expected ErrInvalidSkillType, got %v", err)
	}
	if _, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: uuid.New(), Type: "wanted"}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}

	lvl := int16(4)
	created, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: guitar, Type: "Offered", ProficiencyLevel: &lvl})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Type != skill.TypeOffered || created.UserID != userID {
		t.Fatalf("unexpected link %+v", created)
	}

	links.createErr = repository.ErrUserSkillExists
	if _, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: guitar, Type: "offered"}); !errors.Is(err, ErrUserSkillAlreadyExists) {
		t.Fatalf("expected ErrUserSkillAlreadyExists, got %v", err)
	}

	links.deleteErr = repository.ErrUserSkillForbidden
	if err := uc.DeleteUserSkill(context.Background(), userID, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	links.deleteErr = nil
	if err := uc.DeleteUserSkill(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n.calls() != 2 {
		t.Fatalf("expected add and delete to notify, got %d", n.calls())
	}
}

func TestSkillRequest_CreateRules(t *testing.T) {
	requester, provider := uuid.New(), uuid.New()
	guitar := uuid.New()
	profiles := &mockProfileRepo{all: []profile.Profile{{UserID: provider, Username: "bob"}}}
	skills := &mockSkillRepo{items: []skill.Skill{{ID: guitar, Name: "Guitar"}}}
	repo := newMockSkillRequestRepo()
	uc := NewSkillRequestUsecase(repo, profiles, skills, nil)

	if _, err := uc.Create(context.Background(), requester, CreateSkillRequestInput{ProviderID: requester, RequestedSkillID: guitar}); !errors.Is(err, ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest, got %v", err)
	}
	if _, err := uc.Create(context.Background(), requester, CreateSkillRequestInput{ProviderID: provider, RequestedSkillID: guitar, Message: strings.Repeat("a", 1001)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Create(context.Background(), requester, CreateSkillRequestInput{ProviderID: uuid.New(), RequestedSkillID: guitar}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	missing := uuid.New()
	if _, err := uc.Create(context.Background(), requester, CreateSkillRequestInput{ProviderID: provider, RequestedSkillID: guitar, OfferedSkillID: &missing}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}

	req, err := uc.Create(context.Background(), requester, CreateSkillRequestInput{ProviderID: provider, RequestedSkillID: guitar, Message: " hi "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if req.Status != exchange.StatusPending || req.Message != "hi" {
		t.Fatalf("unexpected request %+v", req)
	}

	in, err := uc.List(context.Background(), provider, "incoming")
	if err != nil || len(in) != 1 {
		t.Fatalf("expected one incoming request, got %v %d", err, len(in))
	}
	if _, err := uc.List(context.Background(), provider, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSkillRequest_UpdateStatus(t *testing.T) {
	requester, provider := uuid.New(), uuid.New()
	req := exchange.SkillRequest{ID: uuid.New(), RequesterID: requester, ProviderID: provider, Status: exchange.StatusPending}
	repo := newMockSkillRequestRepo(req)
	uc := NewSkillRequestUsecase(repo, &mockProfileRepo{}, &mockSkillRepo{}, nil)
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, requester, req.ID, "accepted"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("requester must not accept, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, uuid.New(), req.ID, "accepted"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider must be forbidden, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, provider, req.ID, "paused"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, provider, uuid.New(), "accepted"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}

	got, err := uc.UpdateStatus(ctx, provider, req.ID, "accepted")
	if err != nil || got.Status != exchange.StatusAccepted {
		t.Fatalf("expected accepted, got %v %+v", err, got)
	}
	got, err = uc.UpdateStatus(ctx, requester, req.ID, "completed")
	if err != nil || got.Status != exchange.StatusCompleted {
		t.Fatalf("expected completed, got %v %+v", err, got)
	}
	if _, err := uc.UpdateStatus(ctx, provider, req.ID, "cancelled"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("terminal request must not move, got %v", err)
	}
}

func TestReview_CreateRules(t *testing.T) {
	reviewer, reviewee := uuid.New(), uuid.New()
	profiles := &mockProfileRepo{all: []profile.Profile{
		{UserID: reviewer, Username: "ana"},
		{UserID: reviewee, Username: "bob"},
	}}
	pending := exchange.SkillRequest{ID: uuid.New(), RequesterID: reviewer, ProviderID: reviewee, Status: exchange.StatusPending}
	done := exchange.SkillRequest{ID: uuid.New(), RequesterID: reviewer, ProviderID: reviewee, Status: exchange.StatusCompleted}
	other := exchange.SkillRequest{ID: uuid.New(), RequesterID: uuid.New(), ProviderID: reviewee, Status: exchange.StatusCompleted}
	requests := newMockSkillRequestRepo(pending, done, other)
	reviews := &mockReviewRepo{}
	n := &countingNotifier{}
	uc := NewReviewUsecase(reviews, requests, profiles, n, nil)
	ctx := context.Background()

	if _, err := uc.Create(ctx, reviewer, CreateReviewInput{RevieweeID: reviewer, Rating: 5}); !errors.Is(err, ErrSelfReview) {
		t.Fatalf("expected ErrSelfReview, got %v", err)
	}
	if _, err := uc.Create(ctx, reviewer, CreateReviewInput{RevieweeID: reviewee, Rating: 0}); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := uc.Create(ctx, reviewer, CreateReviewInput{RevieweeID: reviewee, Rating: 4, SkillRequestID: &pending.ID}); !errors.Is(err, ErrReviewNotAllowed) {
		t.Fatalf("pending request must not allow review, got %v", err)
	}
	if _, err := uc.Create(ctx, reviewer, CreateReviewInput{RevieweeID: reviewee, Rating: 4, SkillRequestID: &other.ID}); !errors.Is(err, ErrReviewNotAllowed) {
		t.Fatalf("foreign request must not allow review, got %v", err)
	}
	if len(reviews.created) != 0 {
		t.Fatalf("rejected reviews must not be stored")
	}

	rv, err := uc.Create(ctx, reviewer, CreateReviewInput{RevieweeID: reviewee, Rating: 5, SkillRequestID: &done.ID, Comment: " great "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rv.Comment != "great" || rv.Rating != 5 {
		t.Fatalf("unexpected review %+v", rv)
	}
	if n.calls() != 1 {
		t.Fatalf("expected notification after review")
	}

	reviews.createErr = repository.ErrReviewExists
	if _, err := uc.Create(ctx, reviewer, CreateReviewInput{RevieweeID: reviewee, Rating: 5, SkillRequestID: &done.ID}); !errors.Is(err, ErrReviewAlreadyMade) {
		t.Fatalf("expected ErrReviewAlreadyMade, got %v", err)
	}
}

func TestReview_ListForUsername(t *testing.T) {
	bob := uuid.New()
	profiles := &mockProfileRepo{all: []profile.Profile{{UserID: bob, Username: "bob"}}}
	reviews := &mockReviewRepo{items: []review.Review{
		{ID: uuid.New(), RevieweeID: bob, Rating: 5},
		{ID: uuid.New(), RevieweeID: uuid.New(), Rating: 2},
	}}
	uc := NewReviewUsecase(reviews, newMockSkillRequestRepo(), profiles, nil, nil)

	items, err := uc.ListForUsername(context.Background(), "bob")
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one review, got %v %d", err, len(items))
	}
	if _, err := uc.ListForUsername(context.Background(), "zed"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestNotifiers_FanOut(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	called := false
	Notifiers{a, nil, b, NotifierFunc(func(context.Context) { called = true })}.DirectoryChanged(context.Background())
	if a.calls() != 1 || b.calls() != 1 || !called {
		t.Fatalf("expected every notifier to be called")
	}
}
