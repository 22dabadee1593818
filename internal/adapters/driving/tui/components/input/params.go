// Package input provides the search parameter input for the TUI.
package input

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/config/configvalue"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/styles"
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// ParamsInput is a single-line input for search parameters, written either
// as space separated key=value pairs or as a JSON object.
type ParamsInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewParamsInput creates a focused parameter input.
func NewParamsInput(s *styles.Styles) *ParamsInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "originLocationCode=DEL destinationLocationCode=BOM departureDate=2026-11-02 adults=1"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	return &ParamsInput{
		textinput: ti,
		styles:    s,
		width:     60,
	}
}

// Init starts the cursor blinking.
func (p *ParamsInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *ParamsInput) Update(msg tea.Msg) (*ParamsInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the input with its label.
func (p *ParamsInput) View() string {
	label := p.styles.Title.Render("Params: ")
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Params parses the current value.
func (p *ParamsInput) Params() (domain.SearchParams, error) {
	return ParseParams(p.textinput.Value())
}

// Value returns the raw input text.
func (p *ParamsInput) Value() string {
	return p.textinput.Value()
}

// SetValue replaces the input text.
func (p *ParamsInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *ParamsInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *ParamsInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *ParamsInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *ParamsInput) SetWidth(width int) {
	p.width = width
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// ParseParams reads "k=v k=v" pairs or a JSON object. Pair values are typed
// with configvalue.Parse. An empty string yields empty params.
func ParseParams(raw string) (domain.SearchParams, error) {
	raw = strings.TrimSpace(raw)
	params := domain.SearchParams{}
	if raw == "" {
		return params, nil
	}

	if strings.HasPrefix(raw, "{") {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return nil, fmt.Errorf("%w: params JSON: %w", domain.ErrInvalidInput, err)
		}
		return params, nil
	}

	for _, pair := range strings.Fields(raw) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", domain.ErrInvalidInput, pair)
		}
		params[key] = configvalue.Parse(value)
	}
	return params, nil
}
