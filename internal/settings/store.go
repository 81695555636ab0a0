package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/helios/internal/persist"
)

type State struct {
	Settings  Settings
	IsLoading bool
	IsSaving  bool
	Err       string
}

// Snapshot is the persisted subset of State.
type Snapshot struct {
	Settings Settings `json:"settings"`
}

func Partialize(s State) Snapshot {
	return Snapshot{Settings: s.Settings}
}

type Store struct {
	client  Client
	storage persist.Storage

	mu    sync.Mutex
	state State
}

func NewStore(ctx context.Context, client Client, storage persist.Storage) *Store {
	s := &Store{client: client, storage: storage, state: State{Settings: Defaults()}}

	var snap Snapshot

	ok, err := persist.Load(ctx, storage, persist.KeySettings, &snap)
	if err != nil {
		slog.Warn("failed to rehydrate settings", "error", err)
	}

	if ok && err == nil {
		s.state.Settings = snap.Settings
	}

	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Store) Update(ctx context.Context, p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings = p.Apply(s.state.Settings)
	s.save(ctx)
}

// Save round-trips the current settings through the client.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	s.state.IsSaving = true
	s.state.Err = ""
	current := s.state.Settings
	s.mu.Unlock()

	err := s.client.Save(ctx, current)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsSaving = false

	if err != nil {
		s.state.Err = err.Error()
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}

func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings = Defaults()
	s.state.Err = ""
	s.save(ctx)
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context) {
	if err := persist.Save(ctx, s.storage, persist.KeySettings, Partialize(s.state)); err != nil {
		slog.Warn("failed to persist settings", "error", err)
	}
}
