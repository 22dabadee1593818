// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the search screen keybindings.
type KeyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Submit     key.Binding
	NextKind   key.Binding
	PrevKind   key.Binding
	Enhance    key.Binding
	Up         key.Binding
	Down       key.Binding
	NewSearch  key.Binding
	ClearError key.Binding
	ClearData  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		NextKind: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "kind"),
		),
		PrevKind: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev kind"),
		),
		Enhance: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "airline names"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		ClearError: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear error"),
		),
		ClearData: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "clear results"),
		),
	}
}

// InputHelp returns bindings shown while editing parameters.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextKind, k.Enhance, k.Quit}
}

// ResultsHelp returns bindings shown while browsing results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.NewSearch, k.ClearError, k.ClearData, k.Back}
}

// Matches reports whether keyStr is one of the binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
