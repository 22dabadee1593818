// Package travelapi is the HTTP client for the external travel-data API.
//
// Client implements both driven.TravelSearchClient and
// driven.AirlineMetadataClient. Requests are authenticated with the OAuth2
// client-credentials flow when credentials are configured and are throttled
// with a token bucket shared by all operations.
package travelapi
