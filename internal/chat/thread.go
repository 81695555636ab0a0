package chat

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/helios/internal/hook"
)

type ThreadState struct {
	Messages  []Message
	IsLoading bool
	IsSending bool
	Err       string
}

// Thread loads the chat history and sends messages optimistically.
type Thread struct {
	client Client
	scope  hook.Scope
	now    func() time.Time

	mu    sync.Mutex
	state ThreadState
}

func NewThread(client Client) *Thread {
	return &Thread{client: client, now: time.Now, state: ThreadState{IsLoading: true}}
}

func (t *Thread) Mount(ctx context.Context) {
	if t.scope.Mount() {
		t.Refresh(ctx)
	}
}

func (t *Thread) Unmount() { t.scope.Unmount() }

// Refresh reloads the history. Messages still pending are kept at the end.
func (t *Thread) Refresh(ctx context.Context) {
	ctx, ticket, done, ok := t.scope.Begin(ctx)
	if !ok {
		return
	}
	defer done()

	t.mu.Lock()
	t.state.IsLoading = true
	t.state.Err = ""
	t.mu.Unlock()

	msgs, err := t.client.Messages(ctx)

	t.scope.Publish(ticket, func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.state.IsLoading = false

		if err != nil {
			t.state.Err = err.Error()
			return
		}

		fresh := make([]Message, 0, len(msgs))
		for _, m := range msgs {
			fresh = append(fresh, m.Confirm())
		}

		for _, m := range t.state.Messages {
			if m.IsPending() {
				fresh = append(fresh, m)
			}
		}

		t.state.Messages = fresh
	})
}

// Send appends the user's message before calling the client, then swaps it
// for the confirmed pair. On failure every pending message is removed.
// Blank content is ignored. A send while another is in flight changes
// nothing and returns ErrSendInFlight so callers can tell it was dropped.
func (t *Thread) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	localID := uuid.NewString()

	t.mu.Lock()
	if t.state.IsSending {
		t.mu.Unlock()
		return ErrSendInFlight
	}

	t.state.IsSending = true
	t.state.Err = ""
	t.state.Messages = append(t.state.Messages, Message{
		ID:        localID,
		Role:      RoleUser,
		Content:   content,
		Timestamp: t.now(),
		State:     Pending{LocalID: localID},
	})
	t.mu.Unlock()

	ex, err := t.client.Send(ctx, content)

	// Publish holds the scope lock while taking t.mu, so the scope is never
	// queried with t.mu held.
	unmounted := t.scope.Unmounted()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.IsSending = false

	if err != nil {
		t.state.Messages = slices.DeleteFunc(t.state.Messages, Message.IsPending)
		t.state.Err = err.Error()

		return fmt.Errorf("sending message: %w", err)
	}

	if unmounted {
		return nil
	}

	t.state.Messages = slices.DeleteFunc(t.state.Messages, func(m Message) bool {
		p, ok := m.State.(Pending)
		return ok && p.LocalID == localID
	})
	t.state.Messages = append(t.state.Messages, ex.UserMessage.Confirm(), ex.AIResponse.Confirm())

	return nil
}

// Clear wipes the history on the server and locally.
func (t *Thread) Clear(ctx context.Context) error {
	if err := t.client.Clear(ctx); err != nil {
		t.mu.Lock()
		t.state.Err = err.Error()
		t.mu.Unlock()

		return fmt.Errorf("clearing history: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Messages = nil
	t.state.Err = ""

	return nil
}

func (t *Thread) ClearError() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Err = ""
}

func (t *Thread) State() ThreadState {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state
	st.Messages = slices.Clone(st.Messages)

	return st
}
