package usecase

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrCertificationNotFound        = errors.New("certification not found")
	ErrCertificationAlreadyAssigned = errors.New("user already has this certification")
	ErrUserCertificationNotFound    = errors.New("user certification not found")
)

type AddUserCertificationInput struct {
	CertificationID uuid.UUID
	DateObtained    *time.Time
	ExpiryDate      *time.Time
	CredentialID    *string
	CredentialURL   *string
	Notes           *string
}

// UpdateUserCertificationInput is a coalescing patch: nil fields keep stored
// values.
type UpdateUserCertificationInput struct {
	DateObtained  *time.Time
	ExpiryDate    *time.Time
	CredentialID  *string
	CredentialURL *string
	Notes         *string
}

type UserCertificationUsecase interface {
	ListUserCertifications(ctx context.Context, userID uuid.UUID) ([]repository.UserCertificationRow, error)
	AddUserCertification(ctx context.Context, userID uuid.UUID, in AddUserCertificationInput) (repository.UserCertificationRow, error)
	UpdateUserCertification(ctx context.Context, userID, certificationID uuid.UUID, in UpdateUserCertificationInput) (repository.UserCertificationRow, error)
	RemoveUserCertification(ctx context.Context, userID, certificationID uuid.UUID) error
}

type UserCertification struct {
	repo  repository.UserCertificationRepository
	certs repository.CertificationRepository
}

func NewUserCertificationUsecase(repo repository.UserCertificationRepository, certs repository.CertificationRepository) *UserCertification {
	return &UserCertification{repo: repo, certs: certs}
}

func (u *UserCertification) ListUserCertifications(ctx context.Context, userID uuid.UUID) ([]repository.UserCertificationRow, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *UserCertification) AddUserCertification(ctx context.Context, userID uuid.UUID, in AddUserCertificationInput) (repository.UserCertificationRow, error) {
	if in.CertificationID == uuid.Nil || in.DateObtained == nil {
		return repository.UserCertificationRow{}, ErrInvalidInput
	}

	exists, err := u.certs.ExistsByID(ctx, in.CertificationID)
	if err != nil {
		return repository.UserCertificationRow{}, ErrInternal
	}
	if !exists {
		return repository.UserCertificationRow{}, ErrCertificationNotFound
	}

	assigned, err := u.repo.ExistsPair(ctx, userID, in.CertificationID)
	if err != nil {
		return repository.UserCertificationRow{}, ErrInternal
	}
	if assigned {
		return repository.UserCertificationRow{}, ErrCertificationAlreadyAssigned
	}

	created, err := u.repo.Create(ctx, repository.CreateUserCertification{
		UserID:          userID,
		CertificationID: in.CertificationID,
		DateObtained:    *in.DateObtained,
		ExpiryDate:      in.ExpiryDate,
		CredentialID:    in.CredentialID,
		CredentialURL:   in.CredentialURL,
		Notes:           in.Notes,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return repository.UserCertificationRow{}, ErrCertificationAlreadyAssigned
		}
		if isForeignKeyViolation(err) {
			return repository.UserCertificationRow{}, ErrCertificationNotFound
		}
		return repository.UserCertificationRow{}, ErrInternal
	}
	return created, nil
}

func (u *UserCertification) UpdateUserCertification(ctx context.Context, userID, certificationID uuid.UUID, in UpdateUserCertificationInput) (repository.UserCertificationRow, error) {
	if certificationID == uuid.Nil {
		return repository.UserCertificationRow{}, ErrInvalidInput
	}

	updated, err := u.repo.UpdatePair(ctx, userID, certificationID, repository.UserCertificationPatch{
		DateObtained:  in.DateObtained,
		ExpiryDate:    in.ExpiryDate,
		CredentialID:  in.CredentialID,
		CredentialURL: in.CredentialURL,
		Notes:         in.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserCertificationNotFound) {
			return repository.UserCertificationRow{}, ErrUserCertificationNotFound
		}
		return repository.UserCertificationRow{}, ErrInternal
	}
	return updated, nil
}

func (u *UserCertification) RemoveUserCertification(ctx context.Context, userID, certificationID uuid.UUID) error {
	if certificationID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeletePair(ctx, userID, certificationID); err != nil {
		if errors.Is(err, repository.ErrUserCertificationNotFound) {
			return ErrUserCertificationNotFound
		}
		return ErrInternal
	}
	return nil
}
