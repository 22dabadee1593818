package list

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func testOffers(n int) []Offer {
	offers := make([]Offer, n)
	for i := range offers {
		offers[i] = Offer{Title: fmt.Sprintf("Offer %d", i+1), Detail: "detail", Price: "10 EUR"}
	}
	return offers
}

func TestOfferList_Empty(t *testing.T) {
	l := NewOfferList(nil)

	assert.Contains(t, l.View(), "No results")
	assert.Equal(t, 0, l.Selected())

	l.MoveDown()
	assert.Equal(t, 0, l.Selected())
}

func TestOfferList_Navigation(t *testing.T) {
	l := NewOfferList(nil)
	l.SetOffers(testOffers(3))

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, l.Selected())

	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())
}

func TestOfferList_SetOffersResetsSelection(t *testing.T) {
	l := NewOfferList(nil)
	l.SetOffers(testOffers(3))
	l.MoveDown()

	l.SetOffers(testOffers(2))

	assert.Equal(t, 0, l.Selected())
	assert.Len(t, l.Offers(), 2)
}

func TestOfferList_ViewWindowsAroundSelection(t *testing.T) {
	l := NewOfferList(nil)
	l.SetDimensions(80, 6) // two offers visible
	l.SetOffers(testOffers(5))

	view := l.View()
	assert.Contains(t, view, "Results (5)")
	assert.Contains(t, view, "Offer 1")
	assert.NotContains(t, view, "Offer 3")

	for range 4 {
		l.MoveDown()
	}
	view = l.View()
	assert.Contains(t, view, "Offer 5")
	assert.NotContains(t, view, "Offer 1")
	assert.Contains(t, view, "10 EUR")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
