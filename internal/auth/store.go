package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/helios/internal/persist"
)

type State struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

// Snapshot is the persisted subset of State.
type Snapshot struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

func Partialize(s State) Snapshot {
	return Snapshot{User: cloneUser(s.User), IsAuthenticated: s.IsAuthenticated}
}

type Store struct {
	client  Client
	storage persist.Storage

	mu    sync.Mutex
	state State
}

// NewStore rehydrates the persisted snapshot. A snapshot that cannot be read
// is logged and the store starts signed out.
func NewStore(ctx context.Context, client Client, storage persist.Storage) *Store {
	s := &Store{client: client, storage: storage}

	var snap Snapshot

	ok, err := persist.Load(ctx, storage, persist.KeyAuth, &snap)
	if err != nil {
		slog.Warn("failed to rehydrate auth state", "error", err)
	}

	if ok && err == nil {
		s.state.User = snap.User
		s.state.IsAuthenticated = snap.IsAuthenticated
	}

	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.User = cloneUser(st.User)

	return st
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	s.update(ctx, func(st *State) {
		st.IsLoading = true
		st.Err = ""
	})

	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.update(ctx, func(st *State) {
			st.IsLoading = false
			st.Err = err.Error()
		})

		return fmt.Errorf("logging in: %w", err)
	}

	s.signIn(ctx, user)

	return nil
}

func (s *Store) Signup(ctx context.Context, params SignupParams) error {
	s.update(ctx, func(st *State) {
		st.IsLoading = true
		st.Err = ""
	})

	user, err := s.client.Signup(ctx, params)
	if err != nil {
		s.update(ctx, func(st *State) {
			st.IsLoading = false
			st.Err = err.Error()
		})

		return fmt.Errorf("signing up: %w", err)
	}

	s.signIn(ctx, user)

	return nil
}

// Logout clears the identity before asking the client to drop its session.
func (s *Store) Logout(ctx context.Context) {
	s.update(ctx, func(st *State) {
		st.User = nil
		st.IsAuthenticated = false
		st.Err = ""
	})

	if err := s.client.Logout(ctx); err != nil {
		slog.Warn("failed to drop session", "error", err)
	}
}

// FetchUser revalidates the session. Any failure signs the user out without
// setting an error.
func (s *Store) FetchUser(ctx context.Context) {
	s.update(ctx, func(st *State) { st.IsLoading = true })

	user, err := s.client.GetUser(ctx)
	if err != nil {
		s.update(ctx, func(st *State) {
			st.User = nil
			st.IsAuthenticated = false
			st.IsLoading = false
		})

		return
	}

	s.signIn(ctx, user)
}

func (s *Store) CheckAuth() bool {
	return s.client.HasSession()
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Err = ""
}

func (s *Store) signIn(ctx context.Context, user *User) {
	s.update(ctx, func(st *State) {
		st.User = cloneUser(user)
		st.IsAuthenticated = true
		st.IsLoading = false
	})
}

// update applies fn and saves the snapshot when the persisted fields changed.
func (s *Store) update(ctx context.Context, fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := Partialize(s.state)
	fn(&s.state)
	after := Partialize(s.state)

	if snapshotEqual(before, after) {
		return
	}

	if err := persist.Save(ctx, s.storage, persist.KeyAuth, after); err != nil {
		slog.Warn("failed to persist auth state", "error", err)
	}
}

func snapshotEqual(a, b Snapshot) bool {
	if a.IsAuthenticated != b.IsAuthenticated {
		return false
	}

	if a.User == nil || b.User == nil {
		return a.User == b.User
	}

	return *a.User == *b.User
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}

	c := *u

	return &c
}
