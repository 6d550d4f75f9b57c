package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		keys     []string
		helpDesc string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}, "quit"},
		{"Pause", km.Pause, []string{"p", " "}, "pause"},
		{"Reset", km.Reset, []string{"r"}, "rerun"},
		{"Up", km.Up, []string{"up", "k"}, "scroll up"},
		{"Down", km.Down, []string{"down", "j"}, "scroll down"},
		{"PageUp", km.PageUp, []string{"pgup"}, "page up"},
		{"PageDown", km.PageDown, []string{"pgdown"}, "page down"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.binding.Enabled() {
				t.Errorf("%s binding should be enabled", tc.name)
			}
			if got := tc.binding.Keys(); !slices.Equal(got, tc.keys) {
				t.Errorf("keys = %q, want %q", got, tc.keys)
			}
			if got := tc.binding.Help().Desc; got != tc.helpDesc {
				t.Errorf("help = %q, want %q", got, tc.helpDesc)
			}
		})
	}
}

func TestKeyMap_FooterOrder(t *testing.T) {
	var descs []string
	for _, b := range DefaultKeyMap().footerBindings() {
		descs = append(descs, b.Help().Desc)
	}
	want := []string{"quit", "pause", "rerun", "scroll up", "scroll down"}
	if !slices.Equal(descs, want) {
		t.Errorf("footer = %q, want %q", descs, want)
	}
}

func TestKeyMap_SpaceTogglesPause(t *testing.T) {
	km := DefaultKeyMap()
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	if !key.Matches(space, km.Pause) {
		t.Error("space should match Pause")
	}
	if key.Matches(space, km.Reset) || key.Matches(space, km.Quit) {
		t.Error("space should only match Pause")
	}
}
