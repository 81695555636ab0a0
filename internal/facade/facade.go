// Package facade is the in-process stand-in for the Helios backend. Every
// call waits a random latency, can be made to fail, and hands out copies of
// its fixture data.
package facade

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/MrJamesThe3rd/helios/internal/matching"
	"github.com/MrJamesThe3rd/helios/internal/persist"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

// Operation names accepted by WithFailure.
const (
	OpAuthLogin              = "auth.login"
	OpAuthSignup             = "auth.signup"
	OpAuthGetUser            = "auth.getUser"
	OpAuthLogout             = "auth.logout"
	OpDashboardStats         = "dashboard.getStats"
	OpDashboardStakingAssets = "dashboard.getStakingAssets"
	OpDashboardActivities    = "dashboard.getActivities"
	OpDashboardTransactions  = "dashboard.getTransactions"
	OpDashboardSummary       = "dashboard.getTransactionSummary"
	OpInsightsNetworkStats   = "insights.getNetworkStats"
	OpInsightsChartData      = "insights.getChartData"
	OpFinancialInsights      = "financialInsights.getInsights"
	OpChatMessages           = "chat.getMessages"
	OpChatSend               = "chat.sendMessage"
	OpChatClear              = "chat.clearHistory"
	OpDocumentsUpload        = "documents.uploadStatement"
	OpExpenseProcessBill     = "expense.processBill"
	OpFraudAnalyze           = "fraud.analyze"
	OpSettingsSave           = "settings.save"
)

const (
	DefaultLatencyMin = 300 * time.Millisecond
	DefaultLatencyMax = 1500 * time.Millisecond
	DefaultSessionTTL = 24 * time.Hour

	defaultSessionSecret = "helios-dev-secret"
)

type options struct {
	latencyMin    time.Duration
	latencyMax    time.Duration
	failures      map[string]error
	sessionSecret []byte
	sessionTTL    time.Duration
	now           func() time.Time
	rules         matching.Repository
}

type Option func(*options)

// WithLatency sets the bounds of the per-call delay. Zero disables it.
func WithLatency(min, max time.Duration) Option {
	return func(o *options) {
		o.latencyMin = min
		o.latencyMax = max
	}
}

// WithFailure makes the named operation return err after its delay.
func WithFailure(op string, err error) Option {
	return func(o *options) {
		o.failures[op] = err
	}
}

func WithSessionSecret(secret []byte) Option {
	return func(o *options) {
		o.sessionSecret = secret
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.sessionTTL = ttl
	}
}

// WithClock replaces time.Now for timestamps and token expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithCategoryRules sets where statement imports look up categories.
func WithCategoryRules(repo matching.Repository) Option {
	return func(o *options) {
		o.rules = repo
	}
}

type Facade struct {
	Auth              *Auth
	Dashboard         *Dashboard
	Insights          *Insights
	FinancialInsights *FinancialInsights
	Chat              *Chat
	Documents         *Documents
	Expense           *Expense
	Fraud             *Fraud
	Settings          *Settings
	Categories        *matching.Service
}

// New builds a facade over storage. A session token left in storage by a
// previous run is picked up.
func New(ctx context.Context, storage persist.Storage, opts ...Option) (*Facade, error) {
	o := options{
		latencyMin:    DefaultLatencyMin,
		latencyMax:    DefaultLatencyMax,
		failures:      make(map[string]error),
		sessionSecret: []byte(defaultSessionSecret),
		sessionTTL:    DefaultSessionTTL,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.latencyMax < o.latencyMin {
		return nil, fmt.Errorf("latency max %s below min %s", o.latencyMax, o.latencyMin)
	}

	if len(o.sessionSecret) == 0 {
		return nil, fmt.Errorf("session secret is empty")
	}

	c := &caller{opts: o}

	a, err := newAuth(ctx, c, storage)
	if err != nil {
		return nil, err
	}

	if o.rules == nil {
		o.rules = matching.NewMemory(matching.DefaultRules()...)
	}

	ledger := transaction.NewLedger(seedTransactions())
	categories := matching.NewService(o.rules)

	return &Facade{
		Auth:              a,
		Dashboard:         &Dashboard{caller: c, ledger: ledger},
		Insights:          &Insights{caller: c},
		FinancialInsights: &FinancialInsights{caller: c},
		Chat:              newChat(c),
		Documents:         &Documents{caller: c, ledger: ledger, categories: categories},
		Expense:           &Expense{caller: c, ledger: ledger},
		Fraud:             &Fraud{caller: c},
		Settings:          &Settings{caller: c},
		Categories:        categories,
	}, nil
}

// caller carries the shared latency and failure behaviour of every namespace.
type caller struct {
	opts options
}

func (c *caller) latency() time.Duration {
	lo, hi := c.opts.latencyMin, c.opts.latencyMax
	if hi <= lo {
		return lo
	}

	return lo + rand.N(hi-lo+1)
}

// call waits for the simulated round trip, then reports any injected failure.
func (c *caller) call(ctx context.Context, op string) error {
	if d := c.latency(); d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if err, ok := c.opts.failures[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *caller) now() time.Time {
	return c.opts.now()
}
