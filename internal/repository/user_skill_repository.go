package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

// UserSkillRow is a user_skills row joined with its catalog skill.
type UserSkillRow struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	SkillID           uuid.UUID
	SkillName         string
	SkillCategory     string
	ProficiencyLevel  string
	YearsOfExperience float64
	LastUsed          *time.Time
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreateUserSkill struct {
	UserID            uuid.UUID
	SkillID           uuid.UUID
	ProficiencyLevel  string
	YearsOfExperience float64
	LastUsed          *time.Time
	Notes             *string
}

// UserSkillPatch carries a coalescing partial update: nil fields leave the
// stored value unchanged.
type UserSkillPatch struct {
	ProficiencyLevel  *string
	YearsOfExperience *float64
	LastUsed          *time.Time
	Notes             *string
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error)
	ExistsPair(ctx context.Context, userID, skillID uuid.UUID) (bool, error)
	Create(ctx context.Context, in CreateUserSkill) (UserSkillRow, error)
	UpdatePair(ctx context.Context, userID, skillID uuid.UUID, patch UserSkillPatch) (UserSkillRow, error)
	DeletePair(ctx context.Context, userID, skillID uuid.UUID) error
}

const userSkillSelect = `SELECT
	us.id, us.user_id, us.skill_id, s.name, s.category,
	us.proficiency_level, us.years_of_experience, us.last_used, us.notes,
	us.created_at, us.updated_at
FROM user_skills us
JOIN skills s ON s.id = us.skill_id`

const userSkillsByUserQuery = userSkillSelect + `
WHERE us.user_id = $1
ORDER BY s.category, s.name`

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error) {
	rows, err := r.db.Query(ctx, userSkillsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	return collectUserSkillRows(rows)
}

func (r *PostgresUserSkillRepository) ExistsPair(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_skills WHERE user_id = $1 AND skill_id = $2)`,
		userID, skillID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, in CreateUserSkill) (UserSkillRow, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency_level, years_of_experience, last_used, notes)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		in.UserID, in.SkillID, in.ProficiencyLevel, in.YearsOfExperience, in.LastUsed, in.Notes,
	)
	if err := row.Scan(&id); err != nil {
		return UserSkillRow{}, err
	}

	return r.findByID(ctx, id)
}

func (r *PostgresUserSkillRepository) UpdatePair(ctx context.Context, userID, skillID uuid.UUID, patch UserSkillPatch) (UserSkillRow, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx,
		`UPDATE user_skills SET
			proficiency_level = COALESCE($1, proficiency_level),
			years_of_experience = COALESCE($2, years_of_experience),
			last_used = COALESCE($3, last_used),
			notes = COALESCE($4, notes),
			updated_at = now()
		 WHERE user_id = $5 AND skill_id = $6
		 RETURNING id`,
		patch.ProficiencyLevel, patch.YearsOfExperience, patch.LastUsed, patch.Notes,
		userID, skillID,
	)
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserSkillRow{}, ErrUserSkillNotFound
		}
		return UserSkillRow{}, err
	}

	return r.findByID(ctx, id)
}

func (r *PostgresUserSkillRepository) DeletePair(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *PostgresUserSkillRepository) findByID(ctx context.Context, id uuid.UUID) (UserSkillRow, error) {
	row := r.db.QueryRow(ctx, userSkillSelect+` WHERE us.id = $1`, id)

	var us UserSkillRow
	if err := scanUserSkillRow(row, &us); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserSkillRow{}, ErrUserSkillNotFound
		}
		return UserSkillRow{}, err
	}
	return us, nil
}

func scanUserSkillRow(row database.Row, us *UserSkillRow) error {
	return row.Scan(
		&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.SkillCategory,
		&us.ProficiencyLevel, &us.YearsOfExperience, &us.LastUsed, &us.Notes,
		&us.CreatedAt, &us.UpdatedAt,
	)
}

func collectUserSkillRows(rows database.Rows) ([]UserSkillRow, error) {
	defer rows.Close()

	out := make([]UserSkillRow, 0)
	for rows.Next() {
		var us UserSkillRow
		if err := scanUserSkillRow(rows, &us); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
