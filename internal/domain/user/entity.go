package user

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRole = "employee"

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Department   *string
	CreatedAt    time.Time
}
