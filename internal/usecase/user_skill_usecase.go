package usecase

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSkillNotFound        = errors.New("skill not found")
	ErrSkillAlreadyAssigned = errors.New("user already has this skill")
	ErrUserSkillNotFound    = errors.New("user skill not found")
	ErrInvalidProficiency   = errors.New("invalid proficiency level")
)

// Proficiency levels accepted on skill assignments.
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyExpert       = "Expert"
)

type AddUserSkillInput struct {
	SkillID           uuid.UUID
	ProficiencyLevel  string
	YearsOfExperience *float64
	LastUsed          *time.Time
	Notes             *string
}

// UpdateUserSkillInput is a coalescing patch: nil fields keep stored values.
type UpdateUserSkillInput struct {
	ProficiencyLevel  *string
	YearsOfExperience *float64
	LastUsed          *time.Time
	Notes             *string
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (repository.UserSkillRow, error)
	UpdateUserSkill(ctx context.Context, userID, skillID uuid.UUID, in UpdateUserSkillInput) (repository.UserSkillRow, error)
	RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type UserSkill struct {
	repo   repository.UserSkillRepository
	skills repository.SkillRepository
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, skills repository.SkillRepository) *UserSkill {
	return &UserSkill{repo: repo, skills: skills}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (repository.UserSkillRow, error) {
	if in.SkillID == uuid.Nil {
		return repository.UserSkillRow{}, ErrInvalidInput
	}
	if !isValidProficiency(in.ProficiencyLevel) {
		return repository.UserSkillRow{}, ErrInvalidProficiency
	}

	years := 0.0
	if in.YearsOfExperience != nil {
		years = *in.YearsOfExperience
	}
	if years < 0 {
		return repository.UserSkillRow{}, ErrInvalidInput
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return repository.UserSkillRow{}, ErrInternal
	}
	if !exists {
		return repository.UserSkillRow{}, ErrSkillNotFound
	}

	assigned, err := u.repo.ExistsPair(ctx, userID, in.SkillID)
	if err != nil {
		return repository.UserSkillRow{}, ErrInternal
	}
	if assigned {
		return repository.UserSkillRow{}, ErrSkillAlreadyAssigned
	}

	created, err := u.repo.Create(ctx, repository.CreateUserSkill{
		UserID:            userID,
		SkillID:           in.SkillID,
		ProficiencyLevel:  in.ProficiencyLevel,
		YearsOfExperience: years,
		LastUsed:          in.LastUsed,
		Notes:             in.Notes,
	})
	if err != nil {
		// the pre-checks race with concurrent writers; the constraints decide
		if isUniqueViolation(err) {
			return repository.UserSkillRow{}, ErrSkillAlreadyAssigned
		}
		if isForeignKeyViolation(err) {
			return repository.UserSkillRow{}, ErrSkillNotFound
		}
		return repository.UserSkillRow{}, ErrInternal
	}
	return created, nil
}

func (u *UserSkill) UpdateUserSkill(ctx context.Context, userID, skillID uuid.UUID, in UpdateUserSkillInput) (repository.UserSkillRow, error) {
	if skillID == uuid.Nil {
		return repository.UserSkillRow{}, ErrInvalidInput
	}
	if in.ProficiencyLevel != nil && !isValidProficiency(*in.ProficiencyLevel) {
		return repository.UserSkillRow{}, ErrInvalidProficiency
	}
	if in.YearsOfExperience != nil && *in.YearsOfExperience < 0 {
		return repository.UserSkillRow{}, ErrInvalidInput
	}

	updated, err := u.repo.UpdatePair(ctx, userID, skillID, repository.UserSkillPatch{
		ProficiencyLevel:  in.ProficiencyLevel,
		YearsOfExperience: in.YearsOfExperience,
		LastUsed:          in.LastUsed,
		Notes:             in.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return repository.UserSkillRow{}, ErrUserSkillNotFound
		}
		return repository.UserSkillRow{}, ErrInternal
	}
	return updated, nil
}

func (u *UserSkill) RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeletePair(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func isValidProficiency(v string) bool {
	switch v {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	default:
		return false
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
