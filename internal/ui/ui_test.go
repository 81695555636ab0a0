package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/helios/internal/ui"
)

func TestStore(t *testing.T) {
	s := ui.NewStore()
	assert.Equal(t, ui.State{SidebarOpen: true}, s.State())

	s.ToggleSidebar()
	assert.False(t, s.State().SidebarOpen)

	s.ToggleSidebar()
	assert.True(t, s.State().SidebarOpen)

	s.SetSidebarOpen(false)
	s.SetSidebarCollapsed(true)
	s.SetGlobalLoading(true)

	assert.Equal(t, ui.State{SidebarCollapsed: true, GlobalLoading: true}, s.State())
}
