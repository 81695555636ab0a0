// Package hook provides the lifecycle shared by page-scoped data loaders:
// fetch once on mount, let the most recently issued refresh win, and drop
// results that arrive after unmount.
package hook

import (
	"context"
	"sync"
)

// Ticket identifies one fetch cycle.
type Ticket uint64

type Scope struct {
	mu        sync.Mutex
	mounted   bool
	unmounted bool
	latest    Ticket
	cancels   map[Ticket]context.CancelFunc
}

// Mount reports whether this is the first mount. Later calls are no-ops so
// repeated renders do not refetch.
func (s *Scope) Mount() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mounted || s.unmounted {
		return false
	}

	s.mounted = true

	return true
}

// Begin starts a fetch cycle. The returned context is cancelled by Unmount,
// and done must be called once the cycle has published or given up.
// ok is false after Unmount.
func (s *Scope) Begin(ctx context.Context) (cctx context.Context, t Ticket, done func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unmounted {
		return ctx, 0, func() {}, false
	}

	s.latest++
	t = s.latest

	cctx, cancel := context.WithCancel(ctx)

	if s.cancels == nil {
		s.cancels = make(map[Ticket]context.CancelFunc)
	}

	s.cancels[t] = cancel

	done = func() {
		s.mu.Lock()
		delete(s.cancels, t)
		s.mu.Unlock()
		cancel()
	}

	return cctx, t, done, true
}

// Publish runs apply only if t is still the latest cycle and the scope is
// still mounted. It reports whether apply ran. apply runs with the scope
// locked: it must not call back into the Scope, and owners must not call the
// Scope while holding a lock that apply takes.
func (s *Scope) Publish(t Ticket, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unmounted || t != s.latest {
		return false
	}

	apply()

	return true
}

// Unmount cancels in-flight cycles. Their results are discarded.
func (s *Scope) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unmounted = true

	for t, cancel := range s.cancels {
		cancel()
		delete(s.cancels, t)
	}
}

func (s *Scope) Unmounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unmounted
}
