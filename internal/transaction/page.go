package transaction

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/helios/internal/hook"
)

//go:generate mockgen -source=page.go -destination=client_mock.go -package=transaction
type Client interface {
	Transactions(ctx context.Context) ([]Transaction, error)
	TransactionSummary(ctx context.Context) (Summary, error)
}

type PageState struct {
	Transactions []Transaction
	Summary      Summary
	Filter       Filter
	Query        string
	IsLoading    bool
	Err          string
}

// Page loads the transaction list and its summary for the transactions screen.
type Page struct {
	client Client
	scope  hook.Scope

	mu    sync.Mutex
	state PageState
	gen   uint64 // bumped whenever the source list is replaced

	memo struct {
		valid  bool
		gen    uint64
		filter Filter
		query  string
		out    []Transaction
	}
	recomputes int
}

func NewPage(client Client) *Page {
	return &Page{client: client, state: PageState{Filter: FilterAll, IsLoading: true}}
}

func (p *Page) Mount(ctx context.Context) {
	if p.scope.Mount() {
		p.Refresh(ctx)
	}
}

func (p *Page) Unmount() { p.scope.Unmount() }

// Refresh refetches both resources in parallel. A failed refresh keeps the
// previously loaded data.
func (p *Page) Refresh(ctx context.Context) {
	ctx, ticket, done, ok := p.scope.Begin(ctx)
	if !ok {
		return
	}
	defer done()

	p.mu.Lock()
	p.state.IsLoading = true
	p.state.Err = ""
	p.mu.Unlock()

	var (
		txs     []Transaction
		summary Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = p.client.Transactions(gctx)

		return err
	})
	g.Go(func() error {
		var err error
		summary, err = p.client.TransactionSummary(gctx)

		return err
	})

	err := g.Wait()

	p.scope.Publish(ticket, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		p.state.IsLoading = false

		if err != nil {
			p.state.Err = err.Error()
			return
		}

		p.state.Transactions = txs
		p.state.Summary = summary
		p.gen++
	})
}

func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.state
	st.Transactions = slices.Clone(st.Transactions)

	return st
}

func (p *Page) SetFilter(f Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Filter = f
}

func (p *Page) SetSearch(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Query = query
}

// Filtered returns the filtered and searched list. The result is cached until
// the source list, the filter or the query changes.
func (p *Page) Filtered() []Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	m := &p.memo
	if !m.valid || m.gen != p.gen || m.filter != p.state.Filter || m.query != p.state.Query {
		m.out = Apply(p.state.Transactions, p.state.Filter, p.state.Query)
		m.valid, m.gen, m.filter, m.query = true, p.gen, p.state.Filter, p.state.Query
		p.recomputes++
	}

	return slices.Clone(m.out)
}
