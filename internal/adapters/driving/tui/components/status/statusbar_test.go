package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Equal(t, StateReady, bar.State())
	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Same(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		total   int
		sort    string
		want    []string
	}{
		{name: "ready", state: StateReady, want: []string{"Ready", "enter: search"}},
		{name: "ready with message", state: StateReady, message: "Reloaded 12 entities", want: []string{"Reloaded 12 entities"}},
		{name: "searching", state: StateSearching, want: []string{"Searching..."}},
		{name: "reloading", state: StateReloading, want: []string{"Reloading shards..."}},
		{name: "error", state: StateError, message: "boom", want: []string{"Error: boom"}},
		{name: "error without message", state: StateError, want: []string{"Error"}},
		{
			name:  "results",
			state: StateResults,
			total: 1234,
			sort:  "rating",
			want:  []string{"1,234 matches by rating", "→/l: next page"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetTotal(tt.total)
			bar.SetSort(tt.sort)

			view := bar.View()
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("oops")
	bar.SetTotal(3)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Total())
}
