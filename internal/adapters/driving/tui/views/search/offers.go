package search

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/tui/components/list"
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// FlightOffers renders enriched flights. The title is the display name, so
// every row always carries an airline name.
func FlightOffers(flights []domain.EnrichedFlightRecord) []list.Offer {
	offers := make([]list.Offer, 0, len(flights))
	for i := range flights {
		detail := flights[i].AirlineName
		if code := domain.ExtractCarrierCode(flights[i].FlightRecord); code != "" {
			detail += " (" + code + ")"
		}
		offers = append(offers, list.Offer{
			Title:  flights[i].DisplayName,
			Detail: detail,
			Price:  priceOf(flights[i].Extra),
		})
	}
	return offers
}

// ResultOffers renders raw result records of any kind.
func ResultOffers(result *domain.SearchResult) []list.Offer {
	if result == nil || len(result.Data) == 0 {
		return nil
	}

	if result.Kind == domain.SearchKindFlights {
		if records, err := result.FlightRecords(); err == nil {
			return rawFlightOffers(records)
		}
	}

	var items []map[string]any
	if err := json.Unmarshal(result.Data, &items); err != nil {
		return []list.Offer{{Title: "Unrecognised response", Detail: err.Error()}}
	}

	offers := make([]list.Offer, 0, len(items))
	for i, item := range items {
		title := firstString(item, "name", "hotel.name", "vehicle.description", "ship.name", "id")
		if title == "" {
			title = fmt.Sprintf("%s offer %d", result.Kind, i+1)
		}
		offers = append(offers, list.Offer{
			Title:  title,
			Detail: firstString(item, "type", "hotel.cityCode", "transferType", "itinerary.name", "id"),
			Price:  priceOf(item),
		})
	}
	return offers
}

func rawFlightOffers(records []domain.FlightRecord) []list.Offer {
	offers := make([]list.Offer, 0, len(records))
	for i := range records {
		code := domain.ExtractCarrierCode(records[i])
		title := strings.TrimSpace(code + " " + records[i].FlightNumber)
		if title == "" {
			title = domain.FallbackAirlineLabel
		}
		offers = append(offers, list.Offer{
			Title:  title,
			Detail: "airline names off (ctrl+e)",
			Price:  priceOf(records[i].Extra),
		})
	}
	return offers
}

// priceOf formats the total and currency of price, or of the first offer's
// price when the record has none of its own.
func priceOf(item map[string]any) string {
	for _, prefix := range []string{"price", "offers.0.price"} {
		total := firstString(item, prefix+".total", prefix+".grandTotal")
		if total == "" {
			continue
		}
		currency := firstString(item, prefix+".currency", prefix+".currencyCode")
		return strings.TrimSpace(total + " " + currency)
	}
	return ""
}

func firstString(item map[string]any, paths ...string) string {
	for _, p := range paths {
		if s := lookupString(item, p); s != "" {
			return s
		}
	}
	return ""
}

// lookupString follows a dotted path through nested objects and arrays
// (numeric segments index arrays) and formats scalar leaves.
func lookupString(item map[string]any, path string) string {
	var cur any = item
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return ""
			}
			cur = node[i]
		default:
			return ""
		}
	}

	switch leaf := cur.(type) {
	case string:
		return leaf
	case float64:
		return strconv.FormatFloat(leaf, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(leaf)
	}
	return ""
}
