package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CompleteProfile is the aggregated view of a user with all of their skill and
// certification associations.
type CompleteProfile struct {
	User           user.User
	Skills         []UserSkillRow
	Certifications []UserCertificationRow
}

type ProfileRepository interface {
	GetCompleteProfile(ctx context.Context, userID uuid.UUID) (CompleteProfile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// GetCompleteProfile runs all three reads inside one read-only transaction so
// the composition never observes a half-applied concurrent write.
func (r *PostgresProfileRepository) GetCompleteProfile(ctx context.Context, userID uuid.UUID) (CompleteProfile, error) {
	tx, err := r.db.BeginReadOnly(ctx)
	if err != nil {
		return CompleteProfile{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var p CompleteProfile

	row := tx.QueryRow(ctx,
		`SELECT id, email, name, role, department, created_at FROM users WHERE id = $1`,
		userID,
	)
	if err := row.Scan(&p.User.ID, &p.User.Email, &p.User.Name, &p.User.Role, &p.User.Department, &p.User.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return CompleteProfile{}, user.ErrNotFound
		}
		return CompleteProfile{}, err
	}

	skillRows, err := tx.Query(ctx, userSkillsByUserQuery, userID)
	if err != nil {
		return CompleteProfile{}, err
	}
	p.Skills, err = collectUserSkillRows(skillRows)
	if err != nil {
		return CompleteProfile{}, err
	}

	certRows, err := tx.Query(ctx, userCertificationsByUserQuery, userID)
	if err != nil {
		return CompleteProfile{}, err
	}
	p.Certifications, err = collectUserCertificationRows(certRows)
	if err != nil {
		return CompleteProfile{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CompleteProfile{}, err
	}
	return p, nil
}
