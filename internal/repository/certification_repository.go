package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/catalog"

	"github.com/google/uuid"
)

type CertificationRepository interface {
	GetAll(ctx context.Context) ([]catalog.Certification, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, name, issuingOrganization string, description *string) (catalog.Certification, error)
}

type PostgresCertificationRepository struct {
	db database.DB
}

func NewPostgresCertificationRepository(db database.DB) *PostgresCertificationRepository {
	return &PostgresCertificationRepository{db: db}
}

func (r *PostgresCertificationRepository) GetAll(ctx context.Context) ([]catalog.Certification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, issuing_organization, description, created_at
		 FROM certifications
		 ORDER BY issuing_organization, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Certification, 0)
	for rows.Next() {
		var c catalog.Certification
		if err := rows.Scan(&c.ID, &c.Name, &c.IssuingOrganization, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCertificationRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM certifications WHERE name = $1)`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCertificationRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM certifications WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCertificationRepository) Create(ctx context.Context, name, issuingOrganization string, description *string) (catalog.Certification, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO certifications (id, name, issuing_organization, description)
		 VALUES (gen_random_uuid(), $1, $2, $3)
		 RETURNING id, name, issuing_organization, description, created_at`,
		name, issuingOrganization, description,
	)

	var c catalog.Certification
	if err := row.Scan(&c.ID, &c.Name, &c.IssuingOrganization, &c.Description, &c.CreatedAt); err != nil {
		return catalog.Certification{}, err
	}
	return c, nil
}
