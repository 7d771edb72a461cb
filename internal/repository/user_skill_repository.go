package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/database/postgres"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrUserSkillNotFound  = errors.New("user skill not found")
	ErrUserSkillForbidden = errors.New("forbidden")
	ErrUserSkillExists    = errors.New("user skill already exists")
)

type UserSkillRepository interface {
	UserIDsBySkill(ctx context.Context, skillID uuid.UUID, t skill.Type) ([]uuid.UUID, error)
	ListForUsers(ctx context.Context, userIDs []uuid.UUID) ([]skill.UserSkill, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	Create(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, s.name, s.category, us.skill_type, us.proficiency_level, us.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id`

func (r *PostgresUserSkillRepository) UserIDsBySkill(ctx context.Context, skillID uuid.UUID, t skill.Type) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT user_id FROM user_skills WHERE skill_id = $1 AND skill_type = $2`,
		skillID, string(t),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForUsers returns every offered and wanted link for the given users in
// one query, oldest link first.
func (r *PostgresUserSkillRepository) ListForUsers(ctx context.Context, userIDs []uuid.UUID) ([]skill.UserSkill, error) {
	if len(userIDs) == 0 {
		return []skill.UserSkill{}, nil
	}
	return r.queryUserSkills(ctx,
		userSkillSelect+`
		 WHERE us.user_id = ANY($1) AND us.skill_type IN ('offered', 'wanted')
		 ORDER BY us.created_at ASC, us.id ASC`,
		userIDs,
	)
}

func (r *PostgresUserSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	return r.queryUserSkills(ctx,
		userSkillSelect+`
		 WHERE us.user_id = $1
		 ORDER BY us.skill_type ASC, s.name ASC`,
		userID,
	)
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	if us.ID == uuid.Nil {
		us.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, skill_type, proficiency_level)
		 VALUES ($1, $2, $3, $4, $5)`,
		us.ID, us.UserID, us.SkillID, string(us.Type), us.ProficiencyLevel,
	)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return skill.UserSkill{}, ErrUserSkillExists
		case postgres.IsForeignKeyViolation(err):
			return skill.UserSkill{}, ErrSkillNotFound
		default:
			return skill.UserSkill{}, err
		}
	}

	items, err := r.queryUserSkills(ctx, userSkillSelect+` WHERE us.id = $1 AND us.user_id = $2`, us.ID, us.UserID)
	if err != nil {
		return skill.UserSkill{}, err
	}
	if len(items) == 0 {
		return skill.UserSkill{}, ErrUserSkillNotFound
	}
	return items[0], nil
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if postgres.IsNoRows(err) {
			return ErrUserSkillNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserSkillForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *PostgresUserSkillRepository) queryUserSkills(ctx context.Context, q string, args ...any) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		var us skill.UserSkill
		var category, typ string
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &category, &typ, &us.ProficiencyLevel, &us.CreatedAt); err != nil {
			return nil, err
		}
		us.SkillCategory = skill.Category(category)
		us.Type = skill.Type(typ)
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
