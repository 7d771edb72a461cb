package repository

import (
	"context"
	"fmt"
	"strings"

	"skillswap/internal/database"
	"skillswap/internal/database/postgres"
	"skillswap/internal/domain/profile"

	"github.com/google/uuid"
)

// ProfileFilter describes one directory page. When RestrictToUserIDs is set
// only profiles whose user_id is in UserIDs match, even if UserIDs is empty.
type ProfileFilter struct {
	Query             string
	UserIDs           []uuid.UUID
	RestrictToUserIDs bool
	Limit             int
	Offset            int
}

type ProfileRepository interface {
	List(ctx context.Context, f ProfileFilter) ([]profile.Profile, int, error)
	Search(ctx context.Context, text string, limit int) ([]profile.Profile, error)
	GetByUsername(ctx context.Context, username string) (profile.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, in profile.Update) (profile.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, username, full_name, bio, avatar_url, location, avg_rating, total_reviews, created_at, updated_at`

func (r *PostgresProfileRepository) List(ctx context.Context, f ProfileFilter) ([]profile.Profile, int, error) {
	where, args := profileWhere(f)

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []profile.Profile{}, 0, nil
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	args = append(args, limit, offset)
	q := fmt.Sprintf(
		`SELECT %s FROM profiles%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		profileColumns, where, len(args)-1, len(args),
	)
	items, err := r.queryProfiles(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func profileWhere(f ProfileFilter) (string, []any) {
	var clauses []string
	var args []any

	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, containsPattern(q))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(`(username ILIKE $%d ESCAPE '\' OR full_name ILIKE $%d ESCAPE '\')`, n, n))
	}
	if f.RestrictToUserIDs {
		ids := f.UserIDs
		if ids == nil {
			ids = []uuid.UUID{}
		}
		args = append(args, ids)
		clauses = append(clauses, fmt.Sprintf(`user_id = ANY($%d)`, len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PostgresProfileRepository) Search(ctx context.Context, text string, limit int) ([]profile.Profile, error) {
	if limit <= 0 {
		limit = 5
	}
	q := `SELECT ` + profileColumns + ` FROM profiles
		 WHERE username ILIKE $1 ESCAPE '\' OR full_name ILIKE $1 ESCAPE '\'
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`
	return r.queryProfiles(ctx, q, containsPattern(text), limit)
}

func (r *PostgresProfileRepository) GetByUsername(ctx context.Context, username string) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(username) = lower($1)`, username)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Update(ctx context.Context, userID uuid.UUID, in profile.Update) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE profiles
		 SET full_name = COALESCE($2, full_name),
		     bio = COALESCE($3, bio),
		     avatar_url = COALESCE($4, avatar_url),
		     location = COALESCE($5, location)
		 WHERE user_id = $1
		 RETURNING `+profileColumns,
		userID, in.FullName, in.Bio, in.AvatarURL, in.Location,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) queryProfiles(ctx context.Context, q string, args ...any) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Username, &p.FullName,
		&p.Bio, &p.AvatarURL, &p.Location,
		&p.AvgRating, &p.TotalReviews,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}
