// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/keymap"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/styles"
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// Bar shows the orchestrator's search status on the left and key hints on
// the right.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   domain.SearchState
	count   int
	notice  string
	results bool
	width   int
}

// NewBar creates a status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.SearchState{Status: domain.SearchStatusIdle},
		width:  80,
	}
}

// View renders the bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch {
	case b.state.Loading:
		return b.styles.Normal.Render("Searching...")
	case b.state.Error != nil:
		return b.styles.Error.Render("Error: " + b.state.Error.Message)
	case b.notice != "":
		return b.styles.Normal.Render(b.notice)
	case b.state.Status == domain.SearchStatusSucceeded:
		return b.styles.Normal.Render(fmt.Sprintf("%d results", b.count))
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	bindings := b.helpKeys()
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState records the orchestrator state to display.
func (b *Bar) SetState(state domain.SearchState) {
	b.state = state
}

// State returns the displayed state.
func (b *Bar) State() domain.SearchState {
	return b.state
}

// SetResultCount sets the number of results shown after a success.
func (b *Bar) SetResultCount(n int) {
	b.count = n
}

// SetNotice sets a transient message shown when there is no error or
// search in flight.
func (b *Bar) SetNotice(notice string) {
	b.notice = notice
}

// Notice returns the current notice.
func (b *Bar) Notice() string {
	return b.notice
}

// SetResultsMode switches key hints between input and results.
func (b *Bar) SetResultsMode(on bool) {
	b.results = on
}

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

func (b *Bar) helpKeys() []key.Binding {
	if b.results {
		return b.keymap.ResultsHelp()
	}
	return b.keymap.InputHelp()
}
