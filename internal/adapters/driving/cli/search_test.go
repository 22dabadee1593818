package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search <kind>", searchCmd.Use)
}

func TestSearchCmd_ValidArgs(t *testing.T) {
	assert.Equal(t, []string{"flights", "hotels", "cars", "cruises"}, searchCmd.ValidArgs)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasFlags(t *testing.T) {
	flag := searchCmd.Flags().Lookup("param")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)

	assert.NotNil(t, searchCmd.Flags().Lookup("params"))
	assert.NotNil(t, searchCmd.Flags().Lookup("enhance"))
	assert.NotNil(t, searchCmd.Flags().Lookup("json"))
}

func TestSearchCmd_Summary(t *testing.T) {
	client, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "hotels", "-p", "cityCode=PAR")

	require.NoError(t, err)
	assert.Contains(t, out, "2 hotels result(s)")
	require.Len(t, client.params, 1)
	assert.Equal(t, domain.SearchParams{"cityCode": "PAR"}, client.params[0])
}

func TestSearchCmd_NoResults(t *testing.T) {
	client, cleanup := setupTestServices()
	defer cleanup()
	client.data = `[]`

	out, err := execute(t, "search", "cars")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "cruises", "--json")

	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 2)
}

func TestSearchCmd_ParamsMerge(t *testing.T) {
	client, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "search", "flights",
		"--params", `{"originLocationCode":"DEL","adults":1}`,
		"-p", "adults=2", "-p", "nonStop=true")

	require.NoError(t, err)
	require.Len(t, client.params, 1)
	assert.Equal(t, "DEL", client.params[0]["originLocationCode"])
	assert.Equal(t, int64(2), client.params[0]["adults"])
	assert.Equal(t, true, client.params[0]["nonStop"])
}

func TestSearchCmd_Enhance(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "flights", "--enhance")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Example Air 101")
	assert.Contains(t, out, "Price: 4500.00 INR")
	assert.Contains(t, out, "[2] IndiGo 22")
}

func TestSearchCmd_EnhanceJSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "flights", "--enhance", "--json")

	require.NoError(t, err)
	var flights []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &flights))
	require.Len(t, flights, 2)
	assert.Equal(t, "Example Air", flights[0]["airlineName"])
	assert.Equal(t, map[string]any{"total": "4500.00", "currency": "INR"}, flights[0]["price"])
}

func TestSearchCmd_EnhanceRejectsOtherKinds(t *testing.T) {
	client, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "search", "hotels", "--enhance")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, client.calls)
}

func TestSearchCmd_InvalidKind(t *testing.T) {
	client, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "search", "trains")

	assert.ErrorIs(t, err, domain.ErrInvalidSearchKind)
	assert.Empty(t, client.calls)
	state := searchService.State()
	assert.Equal(t, domain.SearchStatusFailed, state.Status)
	assert.False(t, state.Loading)
}

func TestSearchCmd_RemoteFailure(t *testing.T) {
	client, cleanup := setupTestServices()
	defer cleanup()
	client.err = errors.New("service down")

	_, err := execute(t, "search", "flights")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service down")
}

func TestParseSearchParams(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		params, err := parseSearchParams("", nil)
		require.NoError(t, err)
		assert.Empty(t, params)
		assert.NotNil(t, params)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := parseSearchParams(`[1,2]`, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bad pair", func(t *testing.T) {
		for _, pair := range []string{"noequals", "=value"} {
			_, err := parseSearchParams("", []string{pair})
			assert.ErrorIs(t, err, domain.ErrInvalidInput, pair)
		}
	})

	t.Run("value keeps equals signs", func(t *testing.T) {
		params, err := parseSearchParams("", []string{"filter=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", params["filter"])
	})
}
