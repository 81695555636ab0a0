package insights

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/helios/internal/hook"
)

type PageState struct {
	Stats     *NetworkStats
	Chart     []ChartPoint
	Period    string
	IsLoading bool
	Err       string
}

type Page struct {
	client Client
	scope  hook.Scope
	chart  hook.Scope // period changes only

	mu    sync.Mutex
	state PageState
	shown string // period of state.Chart
}

func NewPage(client Client) *Page {
	return &Page{client: client, state: PageState{Period: DefaultPeriod, IsLoading: true}}
}

func (p *Page) Mount(ctx context.Context) {
	if p.scope.Mount() {
		p.Refresh(ctx)
	}
}

func (p *Page) Unmount() {
	p.scope.Unmount()
	p.chart.Unmount()
}

// Refresh loads the stats and the chart for the selected period together.
func (p *Page) Refresh(ctx context.Context) {
	ctx, ticket, done, ok := p.scope.Begin(ctx)
	if !ok {
		return
	}
	defer done()

	p.mu.Lock()
	p.state.IsLoading = true
	p.state.Err = ""
	period := p.state.Period
	p.mu.Unlock()

	var (
		stats NetworkStats
		chart []ChartPoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = p.client.NetworkStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		chart, err = p.client.ChartData(gctx, period)
		return err
	})

	err := g.Wait()

	var (
		current  string
		firstRun bool
	)

	published := p.scope.Publish(ticket, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		p.state.IsLoading = false

		if err != nil {
			p.state.Err = err.Error()
			return
		}

		firstRun = p.state.Stats == nil
		p.state.Stats = &stats
		current = p.state.Period

		if current == period {
			p.state.Chart = chart
			p.shown = period
		}
	})

	// The period changed during the first load, when SetPeriod could not
	// fetch the chart itself.
	if published && firstRun && current != period {
		p.loadChart(ctx, current)
	}
}

// SetPeriod selects a chart period. Once stats have loaded only the chart is
// refetched; before that the load in flight picks the new period up.
func (p *Page) SetPeriod(ctx context.Context, period string) {
	p.mu.Lock()
	changed := p.state.Period != period
	p.state.Period = period
	loaded := p.state.Stats != nil
	p.mu.Unlock()

	if !changed || !loaded {
		return
	}

	p.loadChart(ctx, period)
}

// loadChart fetches the series for period. On failure the error is set and
// the selection falls back to the period of the series still shown.
func (p *Page) loadChart(ctx context.Context, period string) {
	ctx, ticket, done, ok := p.chart.Begin(ctx)
	if !ok {
		return
	}
	defer done()

	chart, err := p.client.ChartData(ctx, period)

	p.chart.Publish(ticket, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		if p.state.Period != period {
			return
		}

		if err != nil {
			p.state.Err = err.Error()
			if p.shown != "" {
				p.state.Period = p.shown
			}

			return
		}

		p.state.Chart = chart
		p.state.Err = ""
		p.shown = period
	})
}

func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.state
	if st.Stats != nil {
		stats := *st.Stats
		stats.Regions = slices.Clone(stats.Regions)
		st.Stats = &stats
	}

	st.Chart = slices.Clone(st.Chart)

	return st
}
