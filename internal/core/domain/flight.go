package domain

import (
	"encoding/json"
	"strings"
)

// JSON keys read from raw flight records.
const (
	keyFlightNumber           = "flightNumber"
	keyValidatingAirlineCodes = "validatingAirlineCodes"
	keyOperating              = "operating"
	keyCarrierCode            = "carrierCode"
	keyAirlineName            = "airlineName"
	keyDisplayName            = "displayName"
)

// OperatingCarrier is the "operating" sub-object of a flight record.
type OperatingCarrier struct {
	CarrierCode string

	// Extra holds every other field of the sub-object unchanged.
	Extra map[string]any
}

// FlightRecord is a raw flight record returned by the travel-data API.
// Fields that enrichment does not read are kept in Extra so that
// re-encoding the record yields the original fields.
type FlightRecord struct {
	FlightNumber           string
	ValidatingAirlineCodes []string
	Operating              *OperatingCarrier
	CarrierCode            string

	// Extra holds every field not listed above.
	Extra map[string]any
}

// EnrichedFlightRecord is a FlightRecord with a resolved airline name.
type EnrichedFlightRecord struct {
	FlightRecord

	// AirlineName is the resolved display name. Never empty.
	AirlineName string

	// DisplayName is AirlineName followed by the flight number, trimmed.
	DisplayName string
}

// NewEnrichedFlightRecord builds an enriched record from a copy of record.
func NewEnrichedFlightRecord(record FlightRecord, airlineName string) EnrichedFlightRecord {
	return EnrichedFlightRecord{
		FlightRecord: record.Clone(),
		AirlineName:  airlineName,
		DisplayName:  strings.TrimSpace(airlineName + " " + record.FlightNumber),
	}
}

// CarrierCodeExtractor returns a carrier code from one location in a record,
// or an empty string if that location holds none.
type CarrierCodeExtractor func(FlightRecord) string

// CarrierCodeExtractors lists the carrier code locations in priority order.
var CarrierCodeExtractors = []CarrierCodeExtractor{
	ValidatingCarrierCode,
	OperatingCarrierCode,
	DirectCarrierCode,
}

// ValidatingCarrierCode returns the first validating airline code.
func ValidatingCarrierCode(f FlightRecord) string {
	if len(f.ValidatingAirlineCodes) == 0 {
		return ""
	}
	return strings.TrimSpace(f.ValidatingAirlineCodes[0])
}

// OperatingCarrierCode returns the operating carrier's code.
func OperatingCarrierCode(f FlightRecord) string {
	if f.Operating == nil {
		return ""
	}
	return strings.TrimSpace(f.Operating.CarrierCode)
}

// DirectCarrierCode returns the record's own carrierCode field.
func DirectCarrierCode(f FlightRecord) string {
	return strings.TrimSpace(f.CarrierCode)
}

// ExtractCarrierCode returns the first non-empty carrier code found by
// the given extractors, or by CarrierCodeExtractors when none are given.
func ExtractCarrierCode(f FlightRecord, extractors ...CarrierCodeExtractor) string {
	if len(extractors) == 0 {
		extractors = CarrierCodeExtractors
	}
	for _, extract := range extractors {
		if code := extract(f); code != "" {
			return code
		}
	}
	return ""
}

// Clone returns a deep copy of the record.
func (f FlightRecord) Clone() FlightRecord {
	clone := FlightRecord{
		FlightNumber: f.FlightNumber,
		CarrierCode:  f.CarrierCode,
		Extra:        cloneMap(f.Extra),
	}
	if f.ValidatingAirlineCodes != nil {
		clone.ValidatingAirlineCodes = append([]string(nil), f.ValidatingAirlineCodes...)
	}
	if f.Operating != nil {
		clone.Operating = &OperatingCarrier{
			CarrierCode: f.Operating.CarrierCode,
			Extra:       cloneMap(f.Operating.Extra),
		}
	}
	return clone
}

// MarshalJSON encodes the record with its Extra fields inlined.
func (f FlightRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.fields())
}

// UnmarshalJSON decodes a record and keeps unknown fields in Extra.
func (f *FlightRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return f.fromRaw(raw)
}

// MarshalJSON encodes the record with airlineName and displayName added.
func (e EnrichedFlightRecord) MarshalJSON() ([]byte, error) {
	fields := e.FlightRecord.fields()
	fields[keyAirlineName] = e.AirlineName
	fields[keyDisplayName] = e.DisplayName
	return json.Marshal(fields)
}

// UnmarshalJSON decodes an enriched record.
func (e *EnrichedFlightRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw[keyAirlineName]; ok {
		e.AirlineName = flexibleString(v)
		delete(raw, keyAirlineName)
	}
	if v, ok := raw[keyDisplayName]; ok {
		e.DisplayName = flexibleString(v)
		delete(raw, keyDisplayName)
	}
	return e.FlightRecord.fromRaw(raw)
}

func (f FlightRecord) fields() map[string]any {
	out := make(map[string]any, len(f.Extra)+4)
	for k, v := range f.Extra {
		out[k] = v
	}
	if f.FlightNumber != "" {
		out[keyFlightNumber] = f.FlightNumber
	}
	if f.ValidatingAirlineCodes != nil {
		out[keyValidatingAirlineCodes] = f.ValidatingAirlineCodes
	}
	if f.Operating != nil {
		op := make(map[string]any, len(f.Operating.Extra)+1)
		for k, v := range f.Operating.Extra {
			op[k] = v
		}
		if f.Operating.CarrierCode != "" {
			op[keyCarrierCode] = f.Operating.CarrierCode
		}
		out[keyOperating] = op
	}
	if f.CarrierCode != "" {
		out[keyCarrierCode] = f.CarrierCode
	}
	return out
}

func (f *FlightRecord) fromRaw(raw map[string]json.RawMessage) error {
	*f = FlightRecord{}
	if v, ok := raw[keyFlightNumber]; ok {
		f.FlightNumber = flexibleString(v)
		delete(raw, keyFlightNumber)
	}
	if v, ok := raw[keyValidatingAirlineCodes]; ok {
		var codes []string
		if err := json.Unmarshal(v, &codes); err == nil {
			f.ValidatingAirlineCodes = codes
			delete(raw, keyValidatingAirlineCodes)
		}
	}
	if v, ok := raw[keyOperating]; ok {
		var op map[string]json.RawMessage
		if err := json.Unmarshal(v, &op); err == nil && op != nil {
			f.Operating = &OperatingCarrier{}
			if code, ok := op[keyCarrierCode]; ok {
				f.Operating.CarrierCode = flexibleString(code)
				delete(op, keyCarrierCode)
			}
			extra, err := decodeExtra(op)
			if err != nil {
				return err
			}
			f.Operating.Extra = extra
			delete(raw, keyOperating)
		}
	}
	if v, ok := raw[keyCarrierCode]; ok {
		f.CarrierCode = flexibleString(v)
		delete(raw, keyCarrierCode)
	}
	extra, err := decodeExtra(raw)
	if err != nil {
		return err
	}
	f.Extra = extra
	return nil
}

func decodeExtra(raw map[string]json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(raw))
	for k, v := range raw {
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return nil, err
		}
		extra[k] = value
	}
	return extra, nil
}

// flexibleString accepts JSON strings and numbers. Anything else is empty.
func flexibleString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	default:
		return val
	}
}
