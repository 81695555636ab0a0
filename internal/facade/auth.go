package facade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/helios/internal/auth"
	"github.com/MrJamesThe3rd/helios/internal/persist"
)

var _ auth.Client = (*Auth)(nil)

type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Plan  auth.Plan `json:"plan"`
	Phone string    `json:"phone,omitempty"`
}

func (c sessionClaims) user() *auth.User {
	return &auth.User{
		ID:    c.Subject,
		Name:  c.Name,
		Email: c.Email,
		Plan:  c.Plan,
		Phone: c.Phone,
	}
}

type account struct {
	user auth.User
	hash []byte
}

// Auth issues HS256 session tokens and keeps them in storage under
// persist.KeySessionToken.
type Auth struct {
	*caller
	storage persist.Storage

	mu       sync.RWMutex
	accounts map[string]account // by lower-cased email
	token    string
}

func newAuth(ctx context.Context, c *caller, storage persist.Storage) (*Auth, error) {
	a := &Auth{
		caller:   c,
		storage:  storage,
		accounts: make(map[string]account),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}

	demo := demoUser()
	a.accounts[demo.Email] = account{user: demo, hash: hash}

	raw, err := storage.Get(ctx, persist.KeySessionToken)
	if err != nil {
		return nil, fmt.Errorf("loading session token: %w", err)
	}

	a.token = string(raw)

	return a, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (*auth.User, error) {
	if err := a.call(ctx, OpAuthLogin); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	a.mu.RLock()
	acc, ok := a.accounts[email]
	a.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return nil, auth.ErrInvalidCredentials
	}

	if err := a.startSession(ctx, acc.user); err != nil {
		return nil, err
	}

	u := acc.user

	return &u, nil
}

func (a *Auth) Signup(ctx context.Context, params auth.SignupParams) (*auth.User, error) {
	if err := a.call(ctx, OpAuthSignup); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || params.Password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := auth.User{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(params.Name),
		Email: email,
		Plan:  auth.PlanFree,
		Phone: strings.TrimSpace(params.Phone),
	}

	a.mu.Lock()
	if _, exists := a.accounts[email]; exists {
		a.mu.Unlock()
		return nil, auth.ErrEmailTaken
	}

	a.accounts[email] = account{user: u, hash: hash}
	a.mu.Unlock()

	if err := a.startSession(ctx, u); err != nil {
		return nil, err
	}

	return &u, nil
}

// GetUser resolves the stored session token. Accounts unknown to this process
// are rebuilt from the token claims.
func (a *Auth) GetUser(ctx context.Context) (*auth.User, error) {
	if err := a.call(ctx, OpAuthGetUser); err != nil {
		return nil, err
	}

	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()

	if token == "" {
		return nil, auth.ErrUnauthorized
	}

	claims, err := a.parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrUnauthorized, err)
	}

	a.mu.RLock()
	acc, ok := a.accounts[claims.Email]
	a.mu.RUnlock()

	if ok && acc.user.ID == claims.Subject {
		u := acc.user
		return &u, nil
	}

	return claims.user(), nil
}

func (a *Auth) Logout(ctx context.Context) error {
	if err := a.call(ctx, OpAuthLogout); err != nil {
		return err
	}

	a.mu.Lock()
	a.token = ""
	a.mu.Unlock()

	if err := a.storage.Delete(ctx, persist.KeySessionToken); err != nil {
		return fmt.Errorf("deleting session token: %w", err)
	}

	return nil
}

func (a *Auth) HasSession() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.token != ""
}

func (a *Auth) startSession(ctx context.Context, u auth.User) error {
	now := a.now()

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.opts.sessionTTL)),
		},
		Name:  u.Name,
		Email: u.Email,
		Plan:  u.Plan,
		Phone: u.Phone,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.opts.sessionSecret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	if err := a.storage.Set(ctx, persist.KeySessionToken, []byte(token)); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	return nil
}

func (a *Auth) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.opts.sessionSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}

	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
