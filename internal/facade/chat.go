package facade

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/helios/internal/chat"
)

var _ chat.Client = (*Chat)(nil)

// Chat keeps one conversation in memory and answers with canned replies.
type Chat struct {
	*caller

	mu      sync.Mutex
	history []chat.Message
}

func newChat(c *caller) *Chat {
	return &Chat{caller: c}
}

// Messages returns the history, or the welcome message when there is none.
func (c *Chat) Messages(ctx context.Context) ([]chat.Message, error) {
	if err := c.call(ctx, OpChatMessages); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) == 0 {
		return []chat.Message{welcome(c.now())}, nil
	}

	out := make([]chat.Message, len(c.history))
	for i, m := range c.history {
		out[i] = cloneMessage(m)
	}

	return out, nil
}

func (c *Chat) Send(ctx context.Context, content string) (chat.Exchange, error) {
	if err := c.call(ctx, OpChatSend); err != nil {
		return chat.Exchange{}, err
	}

	now := c.now()
	text, rich := reply(content)

	ex := chat.Exchange{
		UserMessage: chat.Message{
			ID:        "user-" + uuid.NewString(),
			Role:      chat.RoleUser,
			Content:   content,
			Timestamp: now,
		},
		AIResponse: chat.Message{
			ID:        "ai-" + uuid.NewString(),
			Role:      chat.RoleAssistant,
			Content:   text,
			Timestamp: now,
			Rich:      rich,
		},
	}

	c.mu.Lock()
	c.history = append(c.history, ex.UserMessage, ex.AIResponse)
	c.mu.Unlock()

	ex.AIResponse = cloneMessage(ex.AIResponse)

	return ex, nil
}

func (c *Chat) Clear(ctx context.Context) error {
	if err := c.call(ctx, OpChatClear); err != nil {
		return err
	}

	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()

	return nil
}

func cloneMessage(m chat.Message) chat.Message {
	if m.Rich != nil {
		rich := *m.Rich
		rich.Data, _ = cloneValue(m.Rich.Data).(map[string]any)
		m.Rich = &rich
	}

	return m
}

// cloneValue deep-copies the JSON-like shapes rich payloads are built from.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}

		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}

		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i], _ = cloneValue(e).(map[string]any)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}

		return out
	case [][]string:
		out := make([][]string, len(t))
		for i, e := range t {
			out[i] = slices.Clone(e)
		}

		return out
	case []string:
		return slices.Clone(t)
	}

	return v
}

type cannedReply struct {
	keywords []string
	text     string
	rich     func() *chat.RichContent
}

// replies are matched in order against the lower-cased prompt.
var replies = []cannedReply{
	{
		keywords: []string{"trend", "market"},
		text:     "Markets were positive this week. Your portfolio outpaced the index, led by Ethereum.",
		rich: func() *chat.RichContent {
			return &chat.RichContent{Kind: chat.RichStats, Data: map[string]any{
				"portfolioChange":    "+12.4%",
				"topPerformer":       "ETH",
				"topPerformerChange": "+18.2%",
			}}
		},
	},
	{
		keywords: []string{"portfolio", "optimi", "allocation"},
		text:     "Here is your current allocation. Rebalancing a few points from SOL into USDC would lower volatility without giving up much yield.",
		rich: func() *chat.RichContent {
			return &chat.RichContent{Kind: chat.RichChart, Data: map[string]any{
				"items": []map[string]any{
					{"name": "Ethereum", "current": "$8,242", "change": "+4.2%", "percentage": 64},
					{"name": "Solana", "current": "$4,102", "change": "+7.8%", "percentage": 28},
					{"name": "USD Coin", "current": "$12,093", "change": "+5.1%", "percentage": 8},
				},
			}}
		},
	},
	{
		keywords: []string{"risk"},
		text:     "Risk overview of your positions:",
		rich: func() *chat.RichContent {
			return &chat.RichContent{Kind: chat.RichTable, Data: map[string]any{
				"columns": []string{"Asset", "Volatility", "Risk"},
				"rows": [][]string{
					{"ETH", "Medium", "Moderate"},
					{"SOL", "High", "Elevated"},
					{"USDC", "Low", "Low"},
				},
			}}
		},
	},
	{
		keywords: []string{"predict", "next month", "forecast"},
		text:     "Based on your recent cash flow, expect a surplus of roughly 5% next month if spending stays on trend.",
	},
	{
		keywords: []string{"spend", "expense", "budget"},
		text:     "Your largest expense category this month is Housing, followed by Food & Drink. Transport spend is down compared to last month.",
	},
}

const fallbackReply = "I can help with market trends, portfolio optimization, risk analysis and spending questions. What would you like to look at?"

func reply(prompt string) (string, *chat.RichContent) {
	p := strings.ToLower(prompt)

	for _, r := range replies {
		if !slices.ContainsFunc(r.keywords, func(k string) bool { return strings.Contains(p, k) }) {
			continue
		}

		if r.rich == nil {
			return r.text, nil
		}

		return r.text, r.rich()
	}

	return fallbackReply, nil
}
