package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/database/postgres"
	"skillswap/internal/domain/review"

	"github.com/google/uuid"
)

var ErrReviewExists = errors.New("review already exists")

type ReviewRepository interface {
	Create(ctx context.Context, rv review.Review) (review.Review, error)
	ListForReviewee(ctx context.Context, revieweeID uuid.UUID, limit int) ([]review.Review, error)
}

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// Create inserts a review. The rating aggregate on the reviewee's profile is
// recomputed by the on_review_created trigger in the same transaction.
func (r *PostgresReviewRepository) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO reviews (id, reviewer_id, reviewee_id, skill_request_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, reviewer_id, reviewee_id, skill_request_id, rating, comment, created_at`,
		rv.ID, rv.ReviewerID, rv.RevieweeID, rv.SkillRequestID, rv.Rating, rv.Comment,
	)

	var out review.Review
	err := row.Scan(&out.ID, &out.ReviewerID, &out.RevieweeID, &out.SkillRequestID, &out.Rating, &out.Comment, &out.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return review.Review{}, ErrReviewExists
		}
		return review.Review{}, err
	}
	return out, nil
}

func (r *PostgresReviewRepository) ListForReviewee(ctx context.Context, revieweeID uuid.UUID, limit int) ([]review.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT rv.id, rv.reviewer_id, rv.reviewee_id, rv.skill_request_id, rv.rating, rv.comment, rv.created_at,
		        COALESCE(p.username, '')
		 FROM reviews rv
		 LEFT JOIN profiles p ON p.user_id = rv.reviewer_id
		 WHERE rv.reviewee_id = $1
		 ORDER BY rv.created_at DESC
		 LIMIT $2`,
		revieweeID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]review.Review, 0)
	for rows.Next() {
		var rv review.Review
		if err := rows.Scan(&rv.ID, &rv.ReviewerID, &rv.RevieweeID, &rv.SkillRequestID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.ReviewerUsername); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
