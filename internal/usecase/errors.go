package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrForbidden    = errors.New("forbidden")

	ErrProfileNotFound = errors.New("profile not found")

	ErrSkillNotFound           = errors.New("skill not found")
	ErrSkillAlreadyExists      = errors.New("skill already exists")
	ErrInvalidCategory         = errors.New("invalid skill category")
	ErrInvalidSkillType        = errors.New("invalid skill type")
	ErrInvalidProficiencyLevel = errors.New("invalid proficiency level")
	ErrUserSkillNotFound       = errors.New("user skill not found")
	ErrUserSkillAlreadyExists  = errors.New("user skill already exists")

	ErrSelfRequest       = errors.New("cannot request an exchange with yourself")
	ErrRequestNotFound   = errors.New("skill request not found")
	ErrInvalidStatus     = errors.New("invalid request status")
	ErrInvalidTransition = errors.New("status change not allowed")

	ErrSelfReview        = errors.New("cannot review yourself")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrReviewNotAllowed  = errors.New("review requires a completed exchange between both users")
	ErrReviewAlreadyMade = errors.New("review already submitted")
)
