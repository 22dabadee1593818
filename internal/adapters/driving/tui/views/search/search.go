// Package search provides the search screen of the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/components/input"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/components/list"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/components/status"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/keymap"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/messages"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/styles"
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
)

// View is the search screen: kind tabs, parameter input, result list and
// status bar. Loading and error display follow the orchestrator's state.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.ParamsInput
	list      *list.OfferList
	statusbar *status.Bar

	search driving.SearchOrchestrator
	ctx    context.Context

	kinds      []domain.SearchKind
	kindIndex  int
	enhance    bool
	focusInput bool
	inputErr   error

	width  int
	height int
	ready  bool
}

// NewView creates a search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, search driving.SearchOrchestrator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewParamsInput(s),
		list:       list.NewOfferList(s),
		statusbar:  status.NewBar(s, km),
		search:     search,
		ctx:        context.Background(),
		kinds:      domain.AllSearchKinds(),
		focusInput: true,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context searches run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.SearchCompleted:
		v.handleCompleted(msg)
		return v, nil

	case messages.StateCleared:
		v.syncState()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, v.keymap.Back) {
		if v.focusInput {
			return v, func() tea.Msg { return messages.Quit{} }
		}
		v.focusInput = true
		v.statusbar.SetResultsMode(false)
		return v, v.input.Focus()
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Submit):
		return v, v.submit()
	case keymap.Matches(k, v.keymap.NextKind):
		v.kindIndex = (v.kindIndex + 1) % len(v.kinds)
		return v, nil
	case keymap.Matches(k, v.keymap.PrevKind):
		v.kindIndex = (v.kindIndex + len(v.kinds) - 1) % len(v.kinds)
		return v, nil
	case keymap.Matches(k, v.keymap.Enhance):
		v.enhance = !v.enhance
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.inputErr = nil
	return v, cmd
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(k, v.keymap.NewSearch):
		v.focusInput = true
		v.statusbar.SetResultsMode(false)
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(k, v.keymap.ClearError):
		return v, v.clear(driving.SearchOrchestrator.ClearError, "Error cleared")
	case keymap.Matches(k, v.keymap.ClearData):
		v.list.SetOffers(nil)
		return v, v.clear(driving.SearchOrchestrator.ClearData, "Results cleared")
	}
	return v, nil
}

// submit starts a search unless one is already running.
func (v *View) submit() tea.Cmd {
	if v.search == nil {
		v.inputErr = ErrNoSearchService
		return nil
	}
	if v.statusbar.State().Loading {
		return nil
	}

	params, err := v.input.Params()
	if err != nil {
		v.inputErr = err
		return nil
	}
	v.inputErr = nil

	kind := v.Kind()
	enhance := v.enhance && kind == domain.SearchKindFlights

	// The orchestrator marks itself loading once the command runs; show it now.
	v.statusbar.SetState(domain.SearchState{Status: domain.SearchStatusLoading, Loading: true})
	v.statusbar.SetNotice("")

	search, ctx := v.search, v.ctx
	return func() tea.Msg {
		if enhance {
			flights, err := search.SearchAndEnhance(ctx, params)
			return messages.SearchCompleted{Kind: kind, Flights: flights, Err: err}
		}
		result, err := search.Search(ctx, kind, params)
		return messages.SearchCompleted{Kind: kind, Result: result, Err: err}
	}
}

func (v *View) handleCompleted(msg messages.SearchCompleted) {
	v.syncState()
	if msg.Err != nil {
		return
	}

	var offers []list.Offer
	if msg.Flights != nil {
		offers = FlightOffers(msg.Flights)
	} else {
		offers = ResultOffers(msg.Result)
	}
	v.list.SetOffers(offers)
	v.statusbar.SetResultCount(len(offers))

	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetResultsMode(true)
}

func (v *View) clear(fn func(driving.SearchOrchestrator), notice string) tea.Cmd {
	if v.search == nil {
		return nil
	}
	fn(v.search)
	v.statusbar.SetNotice(notice)
	return func() tea.Msg { return messages.StateCleared{} }
}

// syncState copies the orchestrator's state into the status bar.
func (v *View) syncState() {
	if v.search == nil {
		return
	}
	v.statusbar.SetState(v.search.State())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("weyfar"), "", v.renderTabs(), "", v.input.View(), "")

	if v.inputErr != nil {
		sections = append(sections, v.styles.Error.Render(v.inputErr.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderTabs() string {
	tabs := make([]string, 0, len(v.kinds)+1)
	for i, k := range v.kinds {
		label := strings.ToUpper(string(k[:1])) + string(k[1:])
		if i == v.kindIndex {
			tabs = append(tabs, v.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, v.styles.Tab.Render(label))
		}
	}
	if v.Kind() == domain.SearchKindFlights {
		mark := "[ ]"
		if v.enhance {
			mark = "[x]"
		}
		tabs = append(tabs, v.styles.Muted.Render("  "+mark+" airline names"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12)
	v.statusbar.SetWidth(width)
}

// Kind returns the selected search kind.
func (v *View) Kind() domain.SearchKind {
	return v.kinds[v.kindIndex]
}

// Enhance reports whether flight results get airline names.
func (v *View) Enhance() bool {
	return v.enhance
}

// InputFocused returns whether the parameter input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Offers returns the listed offers.
func (v *View) Offers() []list.Offer {
	return v.list.Offers()
}

// SelectedIndex returns the index of the selected offer.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Status returns the state shown in the status bar.
func (v *View) Status() domain.SearchState {
	return v.statusbar.State()
}

// InputErr returns the last parameter parse error.
func (v *View) InputErr() error {
	return v.inputErr
}

// SetParams replaces the parameter input text.
func (v *View) SetParams(raw string) {
	v.input.SetValue(raw)
}
