// Package auth holds the signed-in identity and the session lifecycle.
package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrEmailTaken         = errors.New("email already registered")
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  Plan   `json:"plan"`
	Phone string `json:"phone,omitempty"`
}

type SignupParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

//go:generate mockgen -source=auth.go -destination=client_mock.go -package=auth
type Client interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Signup(ctx context.Context, params SignupParams) (*User, error)
	GetUser(ctx context.Context) (*User, error)
	Logout(ctx context.Context) error
	// HasSession reports whether a session token is present. It must not block.
	HasSession() bool
}
