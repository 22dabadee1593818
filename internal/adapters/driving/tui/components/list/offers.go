// Package list provides the search result list for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/styles"
)

// Offer is one rendered search result.
type Offer struct {
	Title  string
	Detail string
	Price  string
}

// OfferList displays offers in a navigable list.
type OfferList struct {
	offers   []Offer
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewOfferList creates an empty list.
func NewOfferList(s *styles.Styles) *OfferList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &OfferList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles navigation keys.
func (l *OfferList) Update(msg tea.Msg) (*OfferList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of offers around the selection.
func (l *OfferList) View() string {
	if len(l.offers) == 0 {
		return l.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(l.offers)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(l.offers))), "")

	// Two lines per offer.
	visible := (l.height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.offers))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderOffer(i, l.offers[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *OfferList) renderOffer(index int, o Offer) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxTitle := max(l.width-24, 10)
	title := truncate(o.Title, maxTitle)

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(fmt.Sprintf("%s%-*s", indicator, maxTitle, title))
	} else {
		titleLine = l.styles.Normal.Render(fmt.Sprintf("%s%-*s", indicator, maxTitle, title))
	}
	if o.Price != "" {
		titleLine += "  " + l.styles.Price.Render(o.Price)
	}

	detail := truncate(o.Detail, max(l.width-6, 20))
	return titleLine + "\n" + l.styles.Muted.Render("    "+detail)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// SetOffers replaces the list and resets the selection.
func (l *OfferList) SetOffers(offers []Offer) {
	l.offers = offers
	l.selected = 0
}

// Offers returns the current offers.
func (l *OfferList) Offers() []Offer {
	return l.offers
}

// Selected returns the selected index.
func (l *OfferList) Selected() int {
	return l.selected
}

// MoveUp moves the selection up.
func (l *OfferList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down.
func (l *OfferList) MoveDown() {
	if l.selected < len(l.offers)-1 {
		l.selected++
	}
}

// SetDimensions sets the component size.
func (l *OfferList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}
