package travelapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// Default endpoint paths.
const (
	DefaultFlightsPath  = "/v2/shopping/flight-offers"
	DefaultHotelsPath   = "/v3/shopping/hotel-offers"
	DefaultCarsPath     = "/v1/shopping/transfer-offers"
	DefaultCruisesPath  = "/v1/shopping/cruise-offers"
	DefaultAirlinesPath = "/v1/reference-data/airlines/{code}"
	DefaultTokenPath    = "/v1/security/oauth2/token"
)

// Defaults for throttling and timeouts.
const (
	DefaultRatePerSecond = 5.0
	DefaultTimeout       = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. https://test.api.example.com.
	BaseURL string `validate:"required,url"`

	// TokenURL is the OAuth2 token endpoint. Defaults to BaseURL + DefaultTokenPath.
	TokenURL string `validate:"omitempty,url"`

	// ClientID and ClientSecret enable client-credentials auth when both are set.
	ClientID     string `validate:"required_with=ClientSecret"`
	ClientSecret string `validate:"required_with=ClientID"`

	// RatePerSecond limits outgoing requests. Zero means DefaultRatePerSecond,
	// negative disables throttling.
	RatePerSecond float64

	// Burst is the token bucket size. Defaults to 1.
	Burst int `validate:"gte=0"`

	// Timeout bounds each HTTP request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Paths overrides the endpoint path per search kind.
	Paths map[domain.SearchKind]string

	// AirlinesPath is the airline metadata path; "{code}" is replaced by the carrier code.
	AirlinesPath string

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient replaces the transport client. Used by tests.
	HTTPClient *http.Client `validate:"-"`
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required fields.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("travel api config: %w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// withDefaults returns a copy with empty fields filled in.
func (c Config) withDefaults() Config {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.TokenURL == "" {
		c.TokenURL = c.BaseURL + DefaultTokenPath
	}
	if c.RatePerSecond == 0 {
		c.RatePerSecond = DefaultRatePerSecond
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.AirlinesPath == "" {
		c.AirlinesPath = DefaultAirlinesPath
	}

	paths := map[domain.SearchKind]string{
		domain.SearchKindFlights: DefaultFlightsPath,
		domain.SearchKindHotels:  DefaultHotelsPath,
		domain.SearchKindCars:    DefaultCarsPath,
		domain.SearchKindCruises: DefaultCruisesPath,
	}
	for kind, p := range c.Paths {
		if p != "" {
			paths[kind] = p
		}
	}
	c.Paths = paths
	return c
}

// HasCredentials reports whether client-credentials auth is configured.
func (c Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
