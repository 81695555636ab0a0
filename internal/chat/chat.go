// Package chat is the assistant conversation: message history and optimistic sends.
package chat

import (
	"context"
	"errors"
	"time"
)

var ErrSendInFlight = errors.New("a message is already being sent")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type RichKind string

const (
	RichStats RichKind = "stats"
	RichChart RichKind = "chart"
	RichTable RichKind = "table"
)

type RichContent struct {
	Kind RichKind       `json:"type"`
	Data map[string]any `json:"data"`
}

// State tags a message as either awaiting the server or acknowledged by it.
type State interface {
	isState()
}

// Pending is a locally created message the server has not confirmed yet.
type Pending struct {
	LocalID string
}

// Confirmed is a message the server knows about.
type Confirmed struct {
	ServerID string
}

func (Pending) isState()   {}
func (Confirmed) isState() {}

type Message struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Rich      *RichContent `json:"richContent,omitempty"`
	State     State        `json:"-"`
}

// IsPending reports whether m is still waiting for the server. Messages
// without a state came from the server and count as confirmed.
func (m Message) IsPending() bool {
	_, ok := m.State.(Pending)
	return ok
}

// Confirm marks m as acknowledged under its own id.
func (m Message) Confirm() Message {
	m.State = Confirmed{ServerID: m.ID}
	return m
}

// Exchange is the server's answer to a send: the stored user message and the reply.
type Exchange struct {
	UserMessage Message `json:"userMessage"`
	AIResponse  Message `json:"aiResponse"`
}

//go:generate mockgen -source=chat.go -destination=client_mock.go -package=chat
type Client interface {
	Messages(ctx context.Context) ([]Message, error)
	Send(ctx context.Context, content string) (Exchange, error)
	Clear(ctx context.Context) error
}
