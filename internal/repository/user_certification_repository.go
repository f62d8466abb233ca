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

var ErrUserCertificationNotFound = errors.New("user certification not found")

// UserCertificationRow is a user_certifications row joined with its catalog
// certification.
type UserCertificationRow struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	CertificationID     uuid.UUID
	CertificationName   string
	IssuingOrganization string
	DateObtained        time.Time
	ExpiryDate          *time.Time
	CredentialID        *string
	CredentialURL       *string
	Notes               *string
	CreatedAt           time.Time
}

type CreateUserCertification struct {
	UserID          uuid.UUID
	CertificationID uuid.UUID
	DateObtained    time.Time
	ExpiryDate      *time.Time
	CredentialID    *string
	CredentialURL   *string
	Notes           *string
}

// UserCertificationPatch carries a coalescing partial update: nil fields leave
// the stored value unchanged.
type UserCertificationPatch struct {
	DateObtained  *time.Time
	ExpiryDate    *time.Time
	CredentialID  *string
	CredentialURL *string
	Notes         *string
}

type UserCertificationRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserCertificationRow, error)
	ExistsPair(ctx context.Context, userID, certificationID uuid.UUID) (bool, error)
	Create(ctx context.Context, in CreateUserCertification) (UserCertificationRow, error)
	UpdatePair(ctx context.Context, userID, certificationID uuid.UUID, patch UserCertificationPatch) (UserCertificationRow, error)
	DeletePair(ctx context.Context, userID, certificationID uuid.UUID) error
}

const userCertificationSelect = `SELECT
	uc.id, uc.user_id, uc.certification_id, c.name, c.issuing_organization,
	uc.date_obtained, uc.expiry_date, uc.credential_id, uc.credential_url, uc.notes,
	uc.created_at
FROM user_certifications uc
JOIN certifications c ON c.id = uc.certification_id`

const userCertificationsByUserQuery = userCertificationSelect + `
WHERE uc.user_id = $1
ORDER BY uc.date_obtained DESC`

type PostgresUserCertificationRepository struct {
	db database.DB
}

func NewPostgresUserCertificationRepository(db database.DB) *PostgresUserCertificationRepository {
	return &PostgresUserCertificationRepository{db: db}
}

func (r *PostgresUserCertificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserCertificationRow, error) {
	rows, err := r.db.Query(ctx, userCertificationsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	return collectUserCertificationRows(rows)
}

func (r *PostgresUserCertificationRepository) ExistsPair(ctx context.Context, userID, certificationID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_certifications WHERE user_id = $1 AND certification_id = $2)`,
		userID, certificationID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserCertificationRepository) Create(ctx context.Context, in CreateUserCertification) (UserCertificationRow, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_certifications (id, user_id, certification_id, date_obtained, expiry_date, credential_id, credential_url, notes)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		in.UserID, in.CertificationID, in.DateObtained, in.ExpiryDate, in.CredentialID, in.CredentialURL, in.Notes,
	)
	if err := row.Scan(&id); err != nil {
		return UserCertificationRow{}, err
	}

	return r.findByID(ctx, id)
}

func (r *PostgresUserCertificationRepository) UpdatePair(ctx context.Context, userID, certificationID uuid.UUID, patch UserCertificationPatch) (UserCertificationRow, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx,
		`UPDATE user_certifications SET
			date_obtained = COALESCE($1, date_obtained),
			expiry_date = COALESCE($2, expiry_date),
			credential_id = COALESCE($3, credential_id),
			credential_url = COALESCE($4, credential_url),
			notes = COALESCE($5, notes)
		 WHERE user_id = $6 AND certification_id = $7
		 RETURNING id`,
		patch.DateObtained, patch.ExpiryDate, patch.CredentialID, patch.CredentialURL, patch.Notes,
		userID, certificationID,
	)
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserCertificationRow{}, ErrUserCertificationNotFound
		}
		return UserCertificationRow{}, err
	}

	return r.findByID(ctx, id)
}

func (r *PostgresUserCertificationRepository) DeletePair(ctx context.Context, userID, certificationID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_certifications WHERE user_id = $1 AND certification_id = $2`,
		userID, certificationID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserCertificationNotFound
	}
	return nil
}

func (r *PostgresUserCertificationRepository) findByID(ctx context.Context, id uuid.UUID) (UserCertificationRow, error) {
	row := r.db.QueryRow(ctx, userCertificationSelect+` WHERE uc.id = $1`, id)

	var uc UserCertificationRow
	if err := scanUserCertificationRow(row, &uc); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserCertificationRow{}, ErrUserCertificationNotFound
		}
		return UserCertificationRow{}, err
	}
	return uc, nil
}

func scanUserCertificationRow(row database.Row, uc *UserCertificationRow) error {
	return row.Scan(
		&uc.ID, &uc.UserID, &uc.CertificationID, &uc.CertificationName, &uc.IssuingOrganization,
		&uc.DateObtained, &uc.ExpiryDate, &uc.CredentialID, &uc.CredentialURL, &uc.Notes,
		&uc.CreatedAt,
	)
}

func collectUserCertificationRows(rows database.Rows) ([]UserCertificationRow, error) {
	defer rows.Close()

	out := make([]UserCertificationRow, 0)
	for rows.Next() {
		var uc UserCertificationRow
		if err := scanUserCertificationRow(rows, &uc); err != nil {
			return nil, err
		}
		out = append(out, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
