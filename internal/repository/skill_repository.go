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
	ErrSkillNotFound = errors.New("skill not found")
	ErrSkillExists   = errors.New("skill already exists")
)

type SkillRepository interface {
	FindIDByName(ctx context.Context, name string) (uuid.UUID, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, text string, limit int) ([]skill.Skill, error)
	List(ctx context.Context, category *skill.Category) ([]skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) FindIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT id FROM skills WHERE lower(name) = lower($1)`, name)
	if err := row.Scan(&id); err != nil {
		if postgres.IsNoRows(err) {
			return uuid.Nil, ErrSkillNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) Search(ctx context.Context, text string, limit int) ([]skill.Skill, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.querySkills(ctx,
		`SELECT id, name, category, description, created_at
		 FROM skills
		 WHERE name ILIKE $1 ESCAPE '\'
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		containsPattern(text), limit,
	)
}

func (r *PostgresSkillRepository) List(ctx context.Context, category *skill.Category) ([]skill.Skill, error) {
	if category != nil {
		return r.querySkills(ctx,
			`SELECT id, name, category, description, created_at FROM skills WHERE category = $1 ORDER BY name ASC`,
			string(*category),
		)
	}
	return r.querySkills(ctx, `SELECT id, name, category, description, created_at FROM skills ORDER BY name ASC`)
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, category, description, created_at`,
		s.ID, s.Name, string(s.Category), s.Description,
	)
	created, err := scanSkill(row)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return skill.Skill{}, ErrSkillExists
		}
		return skill.Skill{}, err
	}
	return created, nil
}

func (r *PostgresSkillRepository) querySkills(ctx context.Context, q string, args ...any) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	var category string
	if err := row.Scan(&s.ID, &s.Name, &category, &s.Description, &s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	s.Category = skill.Category(category)
	return s, nil
}
