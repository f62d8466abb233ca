package usecase

import (
	"context"

	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/repository"
	ucuser "skill-matrix/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetUser(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.User, error)
	GetCompleteProfile(ctx context.Context, userID uuid.UUID) (repository.CompleteProfile, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository, profiles repository.ProfileRepository) *User {
	return &User{svc: ucuser.NewService(users, profiles)}
}

func (u *User) GetUser(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetUser(ctx, userID)
}

func (u *User) UpdateUser(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.User, error) {
	return u.svc.UpdateUser(ctx, userID, in)
}

func (u *User) GetCompleteProfile(ctx context.Context, userID uuid.UUID) (repository.CompleteProfile, error) {
	return u.svc.GetCompleteProfile(ctx, userID)
}
