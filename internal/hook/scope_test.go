package hook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/helios/internal/hook"
)

func TestScope_MountOnce(t *testing.T) {
	var s hook.Scope

	assert.True(t, s.Mount())
	assert.False(t, s.Mount())
}

func TestScope_LatestCycleWins(t *testing.T) {
	var s hook.Scope

	_, first, doneFirst, ok := s.Begin(context.Background())
	require.True(t, ok)

	_, second, doneSecond, ok := s.Begin(context.Background())
	require.True(t, ok)

	var published []hook.Ticket

	assert.True(t, s.Publish(second, func() { published = append(published, second) }))
	assert.False(t, s.Publish(first, func() { published = append(published, first) }))
	assert.Equal(t, []hook.Ticket{second}, published)

	doneFirst()
	doneSecond()
}

func TestScope_UnmountCancelsAndDrops(t *testing.T) {
	var s hook.Scope

	ctx, ticket, done, ok := s.Begin(context.Background())
	require.True(t, ok)

	defer done()

	s.Unmount()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, s.Publish(ticket, func() { t.Fatal("published after unmount") }))
	assert.True(t, s.Unmounted())
	assert.False(t, s.Mount())

	_, _, _, ok = s.Begin(context.Background())
	assert.False(t, ok)
}
