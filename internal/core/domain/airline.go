package domain

// FallbackAirlineLabel is shown when a flight has no carrier code at all.
const FallbackAirlineLabel = "Flight"

// staticAirlineNames is the last-resort table of well-known carriers.
// It is never modified at runtime.
var staticAirlineNames = map[string]string{
	"AA": "American Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"AI": "Air India",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"BA": "British Airways",
	"CX": "Cathay Pacific",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"EY": "Etihad Airways",
	"F9": "Frontier Airlines",
	"G8": "Go First",
	"IB": "Iberia",
	"IX": "Air India Express",
	"JL": "Japan Airlines",
	"KL": "KLM Royal Dutch Airlines",
	"LH": "Lufthansa",
	"LX": "Swiss International Air Lines",
	"NH": "All Nippon Airways",
	"NK": "Spirit Airlines",
	"QF": "Qantas",
	"QP": "Akasa Air",
	"QR": "Qatar Airways",
	"SG": "SpiceJet",
	"SQ": "Singapore Airlines",
	"TK": "Turkish Airlines",
	"UA": "United Airlines",
	"UK": "Vistara",
	"VS": "Virgin Atlantic",
	"WN": "Southwest Airlines",
	"6E": "IndiGo",
}

// StaticAirlineName looks up a carrier code in the built-in table.
// Codes are matched exactly as received.
func StaticAirlineName(code string) (string, bool) {
	name, ok := staticAirlineNames[code]
	return name, ok
}

// StaticAirlineFallback returns the built-in name for code, the code itself
// when the table has no entry, or FallbackAirlineLabel when code is empty.
func StaticAirlineFallback(code string) string {
	if code == "" {
		return FallbackAirlineLabel
	}
	if name, ok := StaticAirlineName(code); ok {
		return name
	}
	return code
}

// StaticAirlineCount returns the number of codes in the built-in table.
func StaticAirlineCount() int {
	return len(staticAirlineNames)
}
