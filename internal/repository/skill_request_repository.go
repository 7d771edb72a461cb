package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/database/postgres"
	"skillswap/internal/domain/exchange"

	"github.com/google/uuid"
)

type RequestBox string

const (
	BoxIncoming RequestBox = "incoming"
	BoxOutgoing RequestBox = "outgoing"
)

type SkillRequestRepository interface {
	Create(ctx context.Context, req exchange.SkillRequest) (exchange.SkillRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (exchange.SkillRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID, box RequestBox) ([]exchange.SkillRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to exchange.Status) (exchange.SkillRequest, error)
}

type PostgresSkillRequestRepository struct {
	db database.DB
}

func NewPostgresSkillRequestRepository(db database.DB) *PostgresSkillRequestRepository {
	return &PostgresSkillRequestRepository{db: db}
}

const skillRequestColumns = `id, requester_id, provider_id, requested_skill_id, offered_skill_id, message, status, created_at, updated_at`

func (r *PostgresSkillRequestRepository) Create(ctx context.Context, req exchange.SkillRequest) (exchange.SkillRequest, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skill_requests (id, requester_id, provider_id, requested_skill_id, offered_skill_id, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+skillRequestColumns,
		req.ID, req.RequesterID, req.ProviderID, req.RequestedSkillID, req.OfferedSkillID, req.Message, string(exchange.StatusPending),
	)
	created, err := scanSkillRequest(row)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return exchange.SkillRequest{}, ErrSkillNotFound
		}
		return exchange.SkillRequest{}, err
	}
	return created, nil
}

func (r *PostgresSkillRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (exchange.SkillRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillRequestColumns+` FROM skill_requests WHERE id = $1`, id)
	return scanSkillRequest(row)
}

func (r *PostgresSkillRequestRepository) ListForUser(ctx context.Context, userID uuid.UUID, box RequestBox) ([]exchange.SkillRequest, error) {
	column := "provider_id"
	if box == BoxOutgoing {
		column = "requester_id"
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+skillRequestColumns+` FROM skill_requests WHERE `+column+` = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]exchange.SkillRequest, 0)
	for rows.Next() {
		req, err := scanSkillRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a request from one status to another. If the stored
// status no longer equals from, ErrInvalidTransition is returned.
func (r *PostgresSkillRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to exchange.Status) (exchange.SkillRequest, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE skill_requests SET status = $3
		 WHERE id = $1 AND status = $2
		 RETURNING `+skillRequestColumns,
		id, string(from), string(to),
	)
	updated, err := scanSkillRequest(row)
	if err != nil {
		if errors.Is(err, exchange.ErrNotFound) {
			return exchange.SkillRequest{}, exchange.ErrInvalidTransition
		}
		return exchange.SkillRequest{}, err
	}
	return updated, nil
}

func scanSkillRequest(row database.Row) (exchange.SkillRequest, error) {
	var req exchange.SkillRequest
	var status string
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.ProviderID,
		&req.RequestedSkillID, &req.OfferedSkillID,
		&req.Message, &status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return exchange.SkillRequest{}, exchange.ErrNotFound
		}
		return exchange.SkillRequest{}, err
	}
	req.Status = exchange.Status(status)
	return req, nil
}
