package facade_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/helios/internal/facade"
	"github.com/MrJamesThe3rd/helios/internal/persist"
)

func newFacade(t *testing.T, storage persist.Storage, opts ...facade.Option) *facade.Facade {
	t.Helper()

	if storage == nil {
		storage = persist.NewMemory()
	}

	f, err := facade.New(context.Background(), storage, append([]facade.Option{facade.WithLatency(0, 0)}, opts...)...)
	require.NoError(t, err)

	return f
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []facade.Option
	}{
		{name: "LatencyMaxBelowMin", opts: []facade.Option{facade.WithLatency(time.Second, time.Millisecond)}},
		{name: "EmptySecret", opts: []facade.Option{facade.WithSessionSecret(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := facade.New(context.Background(), persist.NewMemory(), tt.opts...)
			assert.Error(t, err)
		})
	}
}

func TestFacade_FailureInjection(t *testing.T) {
	boom := errors.New("boom")
	f := newFacade(t, nil, facade.WithFailure(facade.OpDashboardStats, boom))

	_, err := f.Dashboard.Stats(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = f.Dashboard.Activities(context.Background())
	assert.NoError(t, err)
}

func TestFacade_LatencyHonoursContext(t *testing.T) {
	f := newFacade(t, nil, facade.WithLatency(time.Hour, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.Insights.NetworkStats(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestFacade_CancelledContextWithoutLatency(t *testing.T) {
	f := newFacade(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Chat.Messages(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFacade_LatencyWithinBounds(t *testing.T) {
	f := newFacade(t, nil, facade.WithLatency(5*time.Millisecond, 20*time.Millisecond))

	start := time.Now()
	_, err := f.Dashboard.Stats(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}
