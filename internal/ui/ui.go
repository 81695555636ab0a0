// Package ui holds transient presentation state. Nothing here is persisted.
package ui

import "sync"

type State struct {
	SidebarOpen      bool
	SidebarCollapsed bool
	GlobalLoading    bool
}

type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{SidebarOpen: true}}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SidebarOpen = !s.state.SidebarOpen
}

func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SidebarOpen = open
}

func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SidebarCollapsed = collapsed
}

func (s *Store) SetGlobalLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.GlobalLoading = loading
}
