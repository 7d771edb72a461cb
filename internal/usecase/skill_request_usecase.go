package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/profile"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const maxRequestMessageLen = 1000

type CreateSkillRequestInput struct {
	ProviderID       uuid.UUID
	RequestedSkillID uuid.UUID
	OfferedSkillID   *uuid.UUID
	Message          string
}

type SkillRequestUsecase interface {
	Create(ctx context.Context, requesterID uuid.UUID, in CreateSkillRequestInput) (exchange.SkillRequest, error)
	List(ctx context.Context, userID uuid.UUID, box string) ([]exchange.SkillRequest, error)
	UpdateStatus(ctx context.Context, actorID, requestID uuid.UUID, status string) (exchange.SkillRequest, error)
}

type SkillRequest struct {
	requests repository.SkillRequestRepository
	profiles repository.ProfileRepository
	skills   repository.SkillRepository
	logger   *log.Logger
}

func NewSkillRequestUsecase(requests repository.SkillRequestRepository, profiles repository.ProfileRepository, skills repository.SkillRepository, logger *log.Logger) *SkillRequest {
	return &SkillRequest{requests: requests, profiles: profiles, skills: skills, logger: logger}
}

func (u *SkillRequest) Create(ctx context.Context, requesterID uuid.UUID, in CreateSkillRequestInput) (exchange.SkillRequest, error) {
	if in.ProviderID == uuid.Nil || in.RequestedSkillID == uuid.Nil {
		return exchange.SkillRequest{}, ErrInvalidInput
	}
	if in.ProviderID == requesterID {
		return exchange.SkillRequest{}, ErrSelfRequest
	}
	if in.OfferedSkillID != nil && *in.OfferedSkillID == uuid.Nil {
		in.OfferedSkillID = nil
	}
	msg := strings.TrimSpace(in.Message)
	if utf8.RuneCountInString(msg) > maxRequestMessageLen {
		return exchange.SkillRequest{}, ErrInvalidInput
	}

	if _, err := u.profiles.GetByUserID(ctx, in.ProviderID); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return exchange.SkillRequest{}, ErrProfileNotFound
		}
		u.logf("[Requests] provider lookup failed | provider_id=%s error=%v", in.ProviderID, err)
		return exchange.SkillRequest{}, ErrInternal
	}

	for _, id := range []*uuid.UUID{&in.RequestedSkillID, in.OfferedSkillID} {
		if id == nil {
			continue
		}
		ok, err := u.skills.ExistsByID(ctx, *id)
		if err != nil {
			u.logf("[Requests] skill lookup failed | skill_id=%s error=%v", *id, err)
			return exchange.SkillRequest{}, ErrInternal
		}
		if !ok {
			return exchange.SkillRequest{}, ErrSkillNotFound
		}
	}

	created, err := u.requests.Create(ctx, exchange.SkillRequest{
		ID:               uuid.New(),
		RequesterID:      requesterID,
		ProviderID:       in.ProviderID,
		RequestedSkillID: in.RequestedSkillID,
		OfferedSkillID:   in.OfferedSkillID,
		Message:          msg,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return exchange.SkillRequest{}, ErrSkillNotFound
		}
		u.logf("[Requests] create failed | requester_id=%s error=%v", requesterID, err)
		return exchange.SkillRequest{}, ErrInternal
	}
	u.logf("[Requests] created | id=%s requester_id=%s provider_id=%s", created.ID, requesterID, in.ProviderID)
	return created, nil
}

func (u *SkillRequest) List(ctx context.Context, userID uuid.UUID, box string) ([]exchange.SkillRequest, error) {
	b := repository.RequestBox(strings.ToLower(strings.TrimSpace(box)))
	switch b {
	case "":
		b = repository.BoxIncoming
	case repository.BoxIncoming, repository.BoxOutgoing:
	default:
		return nil, ErrInvalidInput
	}

	items, err := u.requests.ListForUser(ctx, userID, b)
	if err != nil {
		u.logf("[Requests] list failed | user_id=%s box=%s error=%v", userID, b, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *SkillRequest) UpdateStatus(ctx context.Context, actorID, requestID uuid.UUID, status string) (exchange.SkillRequest, error) {
	to, err := exchange.ParseStatus(status)
	if err != nil {
		return exchange.SkillRequest{}, ErrInvalidStatus
	}

	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, exchange.ErrNotFound) {
			return exchange.SkillRequest{}, ErrRequestNotFound
		}
		u.logf("[Requests] get failed | id=%s error=%v", requestID, err)
		return exchange.SkillRequest{}, ErrInternal
	}

	role := req.RoleOf(actorID)
	if role == exchange.RoleNone {
		return exchange.SkillRequest{}, ErrForbidden
	}
	if !exchange.CanTransition(req.Status, to, role) {
		return exchange.SkillRequest{}, ErrInvalidTransition
	}

	updated, err := u.requests.UpdateStatus(ctx, requestID, req.Status, to)
	if err != nil {
		switch {
		case errors.Is(err, exchange.ErrInvalidTransition):
			return exchange.SkillRequest{}, ErrInvalidTransition
		case errors.Is(err, exchange.ErrNotFound):
			return exchange.SkillRequest{}, ErrRequestNotFound
		default:
			u.logf("[Requests] status update failed | id=%s error=%v", requestID, err)
			return exchange.SkillRequest{}, ErrInternal
		}
	}
	u.logf("[Requests] status changed | id=%s from=%s to=%s", requestID, req.Status, to)
	return updated, nil
}

func (u *SkillRequest) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
