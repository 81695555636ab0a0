package matching

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process Repository.
type Memory struct {
	mu    sync.RWMutex
	rules []Rule
}

func NewMemory(seed ...Rule) *Memory {
	return &Memory{rules: append([]Rule(nil), seed...)}
}

func (m *Memory) FindMatch(_ context.Context, description string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	desc := strings.ToLower(description)

	var best *Rule

	// Later rules are newer, so >= lets them win ties.
	for i := range m.rules {
		r := &m.rules[i]
		if !strings.Contains(desc, strings.ToLower(r.Pattern)) {
			continue
		}

		if best == nil || len(r.Pattern) >= len(best.Pattern) {
			best = r
		}
	}

	if best == nil {
		return "", nil
	}

	return best.Category, nil
}

func (m *Memory) CreateRule(_ context.Context, rule Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules = append(m.rules, rule)

	return nil
}
