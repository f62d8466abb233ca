package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/catalog"

	"github.com/google/uuid"
)

type SkillRepository interface {
	GetAll(ctx context.Context) ([]catalog.Skill, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, name, category string, description *string) (catalog.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAll(ctx context.Context) ([]catalog.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, description, created_at
		 FROM skills
		 ORDER BY category, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Skill, 0)
	for rows.Next() {
		var s catalog.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE name = $1)`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, name, category string, description *string) (catalog.Skill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, description)
		 VALUES (gen_random_uuid(), $1, $2, $3)
		 RETURNING id, name, category, description, created_at`,
		name, category, description,
	)

	var s catalog.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.CreatedAt); err != nil {
		return catalog.Skill{}, err
	}
	return s, nil
}
