package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Accounts adalah bagian repo yang dibutuhkan alur auth.
type Accounts interface {
	Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Auth membungkus signup/login: hash bcrypt + token JWT (HS256, sub = user id).
type Auth struct {
	Repo   Accounts
	Secret []byte
}

type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

func (a *Auth) SignUp(ctx context.Context, in SignUpInput) (*User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)
	role := Role(strings.TrimSpace(string(in.Role)))

	if name == "" || email == "" || password == "" || role == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if !ValidRole(role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := a.Repo.Create(ctx, name, email, string(hash), role)
	if err != nil {
		return nil, "", err
	}

	token, err := a.signToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (*User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, err := a.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := a.signToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (a *Auth) signToken(userID string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: userID})
	return t.SignedString(a.Secret)
}

// VerifyToken mengembalikan user id dari token yang sah.
func (a *Auth) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.Secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
