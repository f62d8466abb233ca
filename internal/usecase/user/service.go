package user

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailInUse   = errors.New("email already in use by another user")
	ErrInternal     = errors.New("internal error")
)

// UpdateProfileInput is a presence-based patch: nil fields are left untouched.
type UpdateProfileInput struct {
	Name       *string
	Email      *string
	Department *string
	Password   *string
}

type Service struct {
	users    user.Repository
	profiles repository.ProfileRepository
}

func NewService(users user.Repository, profiles repository.ProfileRepository) *Service {
	return &Service{users: users, profiles: profiles}
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateUser(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		if email != usr.Email {
			taken, err := s.users.EmailTakenByOther(ctx, email, userID)
			if err != nil {
				return user.User{}, ErrInternal
			}
			if taken {
				return user.User{}, ErrEmailInUse
			}
		}
		usr.Email = email
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Name = name
	}

	if in.Department != nil {
		usr.Department = in.Department
	}

	if in.Password != nil {
		if *in.Password == "" {
			return user.User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, usr); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func (s *Service) GetCompleteProfile(ctx context.Context, userID uuid.UUID) (repository.CompleteProfile, error) {
	p, err := s.profiles.GetCompleteProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return repository.CompleteProfile{}, user.ErrNotFound
		}
		return repository.CompleteProfile{}, ErrInternal
	}
	p.User = sanitizeUser(p.User)
	return p, nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
