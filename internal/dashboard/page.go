package dashboard

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/helios/internal/hook"
)

type PageState struct {
	Stats         *Stats
	StakingAssets []StakingAsset
	Activities    []Activity
	IsLoading     bool
	Err           string
}

type Page struct {
	client Client
	scope  hook.Scope

	mu    sync.Mutex
	state PageState
}

func NewPage(client Client) *Page {
	return &Page{client: client, state: PageState{IsLoading: true}}
}

func (p *Page) Mount(ctx context.Context) {
	if p.scope.Mount() {
		p.Refresh(ctx)
	}
}

func (p *Page) Unmount() { p.scope.Unmount() }

// Refresh loads all three resources. Nothing is published until every call
// has returned, and a failure leaves the previous data in place.
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
		stats      Stats
		assets     []StakingAsset
		activities []Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = p.client.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		assets, err = p.client.StakingAssets(gctx)
		return err
	})
	g.Go(func() (err error) {
		activities, err = p.client.Activities(gctx)
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

		p.state.Stats = &stats
		p.state.StakingAssets = assets
		p.state.Activities = activities
	})
}

func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.state
	if st.Stats != nil {
		stats := *st.Stats
		st.Stats = &stats
	}

	st.StakingAssets = slices.Clone(st.StakingAssets)
	st.Activities = slices.Clone(st.Activities)

	return st
}
