package users

import (
	"errors"
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAuthor   Role = "author"
	RoleAdmin    Role = "admin"
)

func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleAuthor || r == RoleAdmin
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, jangan pernah ikut ter-serialize
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("incorrect email or password")
	ErrInvalidInput   = errors.New("invalid input")
)
