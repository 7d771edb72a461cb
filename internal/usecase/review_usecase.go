package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/profile"
	"skillswap/internal/domain/review"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const maxReviewCommentLen = 1000

type CreateReviewInput struct {
	RevieweeID     uuid.UUID
	SkillRequestID *uuid.UUID
	Rating         int16
	Comment        string
}

type ReviewUsecase interface {
	Create(ctx context.Context, reviewerID uuid.UUID, in CreateReviewInput) (review.Review, error)
	ListForUsername(ctx context.Context, username string) ([]review.Review, error)
}

type Review struct {
	reviews  repository.ReviewRepository
	requests repository.SkillRequestRepository
	profiles repository.ProfileRepository
	notifier ChangeNotifier
	logger   *log.Logger
}

func NewReviewUsecase(
	reviews repository.ReviewRepository,
	requests repository.SkillRequestRepository,
	profiles repository.ProfileRepository,
	notifier ChangeNotifier,
	logger *log.Logger,
) *Review {
	return &Review{reviews: reviews, requests: requests, profiles: profiles, notifier: notifierOrNoop(notifier), logger: logger}
}

func (u *Review) Create(ctx context.Context, reviewerID uuid.UUID, in CreateReviewInput) (review.Review, error) {
	if in.RevieweeID == uuid.Nil {
		return review.Review{}, ErrInvalidInput
	}
	if in.RevieweeID == reviewerID {
		return review.Review{}, ErrSelfReview
	}
	if !review.ValidRating(in.Rating) {
		return review.Review{}, ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > maxReviewCommentLen {
		return review.Review{}, ErrInvalidInput
	}

	if _, err := u.profiles.GetByUserID(ctx, in.RevieweeID); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return review.Review{}, ErrProfileNotFound
		}
		u.logf("[Reviews] reviewee lookup failed | reviewee_id=%s error=%v", in.RevieweeID, err)
		return review.Review{}, ErrInternal
	}

	if in.SkillRequestID != nil {
		req, err := u.requests.GetByID(ctx, *in.SkillRequestID)
		if err != nil {
			if errors.Is(err, exchange.ErrNotFound) {
				return review.Review{}, ErrRequestNotFound
			}
			u.logf("[Reviews] request lookup failed | id=%s error=%v", *in.SkillRequestID, err)
			return review.Review{}, ErrInternal
		}
		if req.Status != exchange.StatusCompleted || !req.Involves(reviewerID, in.RevieweeID) {
			return review.Review{}, ErrReviewNotAllowed
		}
	}

	created, err := u.reviews.Create(ctx, review.Review{
		ID:             uuid.New(),
		ReviewerID:     reviewerID,
		RevieweeID:     in.RevieweeID,
		SkillRequestID: in.SkillRequestID,
		Rating:         in.Rating,
		Comment:        comment,
	})
	if err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return review.Review{}, ErrReviewAlreadyMade
		}
		u.logf("[Reviews] create failed | reviewer_id=%s error=%v", reviewerID, err)
		return review.Review{}, ErrInternal
	}

	u.notifier.DirectoryChanged(ctx)
	return created, nil
}

func (u *Review) ListForUsername(ctx context.Context, username string) ([]review.Review, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidInput
	}
	p, err := u.profiles.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		u.logf("[Reviews] profile lookup failed | username=%q error=%v", username, err)
		return nil, ErrInternal
	}

	items, err := u.reviews.ListForReviewee(ctx, p.UserID, 50)
	if err != nil {
		u.logf("[Reviews] list failed | reviewee_id=%s error=%v", p.UserID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Review) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
