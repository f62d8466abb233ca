package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// EmailTakenByOther reports whether a user other than id already owns email.
	EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error)
	Update(ctx context.Context, u User) error
}
