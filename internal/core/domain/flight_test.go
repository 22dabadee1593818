package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCarrierCode_Priority(t *testing.T) {
	tests := []struct {
		name   string
		record FlightRecord
		want   string
	}{
		{
			name: "validating codes win",
			record: FlightRecord{
				ValidatingAirlineCodes: []string{"AI", "UK"},
				Operating:              &OperatingCarrier{CarrierCode: "6E"},
				CarrierCode:            "SG",
			},
			want: "AI",
		},
		{
			name: "operating carrier next",
			record: FlightRecord{
				Operating:   &OperatingCarrier{CarrierCode: "6E"},
				CarrierCode: "SG",
			},
			want: "6E",
		},
		{
			name:   "direct carrier code last",
			record: FlightRecord{CarrierCode: "SG"},
			want:   "SG",
		},
		{
			name: "empty first validating code falls through",
			record: FlightRecord{
				ValidatingAirlineCodes: []string{""},
				CarrierCode:            "SG",
			},
			want: "SG",
		},
		{
			name:   "nothing found",
			record: FlightRecord{Operating: &OperatingCarrier{}},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCarrierCode(tt.record))
		})
	}
}

func TestExtractCarrierCode_CustomExtractors(t *testing.T) {
	record := FlightRecord{ValidatingAirlineCodes: []string{"AI"}, CarrierCode: "SG"}
	assert.Equal(t, "SG", ExtractCarrierCode(record, DirectCarrierCode, ValidatingCarrierCode))
}

func TestExtractCarrierCode_PreservesCase(t *testing.T) {
	assert.Equal(t, "ai", ExtractCarrierCode(FlightRecord{CarrierCode: " ai "}))
}

func TestFlightRecord_JSONPreservesUnknownFields(t *testing.T) {
	input := `{
		"id": "1",
		"flightNumber": "101",
		"validatingAirlineCodes": ["AI"],
		"operating": {"carrierCode": "AI", "terminal": "3"},
		"price": {"total": "4500.00", "currency": "INR"}
	}`

	var record FlightRecord
	require.NoError(t, json.Unmarshal([]byte(input), &record))

	assert.Equal(t, "101", record.FlightNumber)
	assert.Equal(t, []string{"AI"}, record.ValidatingAirlineCodes)
	require.NotNil(t, record.Operating)
	assert.Equal(t, "AI", record.Operating.CarrierCode)
	assert.Equal(t, "3", record.Operating.Extra["terminal"])
	assert.Equal(t, "1", record.Extra["id"])

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestFlightRecord_NumericFlightNumber(t *testing.T) {
	var record FlightRecord
	require.NoError(t, json.Unmarshal([]byte(`{"flightNumber": 202}`), &record))
	assert.Equal(t, "202", record.FlightNumber)
}

func TestFlightRecord_CloneIsDeep(t *testing.T) {
	original := FlightRecord{
		ValidatingAirlineCodes: []string{"AI"},
		Operating:              &OperatingCarrier{CarrierCode: "AI"},
		Extra:                  map[string]any{"price": map[string]any{"total": "1"}},
	}

	clone := original.Clone()
	clone.ValidatingAirlineCodes[0] = "XX"
	clone.Operating.CarrierCode = "XX"
	clone.Extra["price"].(map[string]any)["total"] = "2"

	assert.Equal(t, "AI", original.ValidatingAirlineCodes[0])
	assert.Equal(t, "AI", original.Operating.CarrierCode)
	assert.Equal(t, "1", original.Extra["price"].(map[string]any)["total"])
}

func TestNewEnrichedFlightRecord(t *testing.T) {
	record := FlightRecord{FlightNumber: "AI 101"}

	enriched := NewEnrichedFlightRecord(record, "Air India")
	assert.Equal(t, "Air India", enriched.AirlineName)
	assert.Equal(t, "Air India AI 101", enriched.DisplayName)

	noNumber := NewEnrichedFlightRecord(FlightRecord{}, "Flight")
	assert.Equal(t, "Flight", noNumber.DisplayName)
}

func TestEnrichedFlightRecord_JSON(t *testing.T) {
	enriched := NewEnrichedFlightRecord(FlightRecord{
		FlightNumber: "22",
		CarrierCode:  "6E",
		Extra:        map[string]any{"id": "x"},
	}, "IndiGo")

	out, err := json.Marshal(enriched)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","flightNumber":"22","carrierCode":"6E","airlineName":"IndiGo","displayName":"IndiGo 22"}`, string(out))

	var decoded EnrichedFlightRecord
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "IndiGo", decoded.AirlineName)
	assert.Equal(t, "IndiGo 22", decoded.DisplayName)
	assert.Equal(t, "6E", decoded.CarrierCode)
	assert.Equal(t, map[string]any{"id": "x"}, decoded.Extra)
}
