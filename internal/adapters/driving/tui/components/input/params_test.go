package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.SearchParams
	}{
		{"empty", "   ", domain.SearchParams{}},
		{
			"pairs",
			"originLocationCode=DEL adults=2 nonStop=true departureDate=2026-11-02",
			domain.SearchParams{
				"originLocationCode": "DEL",
				"adults":             int64(2),
				"nonStop":            true,
				"departureDate":      "2026-11-02",
			},
		},
		{"empty value", "currency=", domain.SearchParams{"currency": ""}},
		{"json", `{"cityCode":"PAR","adults":1}`, domain.SearchParams{"cityCode": "PAR", "adults": float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParams_Invalid(t *testing.T) {
	for _, raw := range []string{"adults", "=2", `{"cityCode":`} {
		_, err := ParseParams(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

func TestParamsInput_Typing(t *testing.T) {
	in := NewParamsInput(nil)
	require.True(t, in.Focused())

	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("adults=1")})

	assert.Equal(t, "adults=1", in.Value())
	params, err := in.Params()
	require.NoError(t, err)
	assert.Equal(t, domain.SearchParams{"adults": int64(1)}, params)
}

func TestParamsInput_FocusAndWidth(t *testing.T) {
	in := NewParamsInput(nil)

	in.Blur()
	assert.False(t, in.Focused())
	in.Focus()
	assert.True(t, in.Focused())

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
	in.SetWidth(100)
	assert.Equal(t, 86, in.textinput.Width)

	in.SetValue("x=1")
	assert.Contains(t, in.View(), "Params:")
}
