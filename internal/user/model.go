package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Phone     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
