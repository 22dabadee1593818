package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/events/kafka"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/storage/memory"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/storage/redis"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/storage/sqlite"
	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/travelapi"
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
	"github.com/developertarun01/weyfar-cli/internal/core/services"
	"github.com/developertarun01/weyfar-cli/internal/logger"
)

// Configuration keys.
const (
	keyAPIBaseURL       = "api.base_url"
	keyAPITokenURL      = "api.token_url"
	keyAPIClientID      = "api.client_id"
	keyAPIClientSecret  = "api.client_secret"
	keyAPIRatePerSecond = "api.rate_per_second"
	keyAPITimeout       = "api.timeout_seconds"
	keyAPIPathsPrefix   = "api.paths."
	keyAPIAirlinesPath  = "api.paths.airlines"
	keyAirlineCache     = "airline.cache"
	keySQLiteDir        = "sqlite.data_dir"
	keyRedisAddr        = "redis.addr"
	keyKafkaBrokers     = "kafka.brokers"
	keyKafkaTopic       = "kafka.topic"
	keySearchTimeout    = "search.timeout_seconds"
	keyHTTPAddr         = "http.addr"
)

// Environment overrides for API settings.
const (
	envAPIClientID     = "WEYFAR_API_CLIENT_ID"
	envAPIClientSecret = "WEYFAR_API_CLIENT_SECRET"
	envAPIBaseURL      = "WEYFAR_API_BASE_URL"
)

// Airline cache backends.
const (
	cacheMemory = "memory"
	cacheSQLite = "sqlite"
	cacheRedis  = "redis"
)

const defaultRedisAddr = "localhost:6379"

// ensureServices builds the search and airline services from configuration
// if they were not injected.
func ensureServices(ctx context.Context) error {
	if searchService != nil {
		return nil
	}
	if configStore == nil {
		return errors.New("configuration not loaded")
	}

	search, airline, err := buildServices(ctx, configStore)
	if err != nil {
		return err
	}
	searchService = search
	if airlineService == nil {
		airlineService = airline
	}
	return nil
}

// buildServices wires adapters selected by configuration into the core
// services. Adapters that need closing are registered in closers.
func buildServices(ctx context.Context, cfg driven.ConfigStore) (*services.SearchService, *services.AirlineService, error) {
	var (
		travel   driven.TravelSearchClient
		metadata driven.AirlineMetadataClient
	)
	client, err := newTravelClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if client != nil {
		travel = client
		metadata = client
	}

	cache, err := newAirlineCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	airline := services.NewAirlineService(metadata, cache)
	search := services.NewSearchService(travel, airline)

	if secs := cfg.GetInt(keySearchTimeout); secs > 0 {
		search.SetTimeout(time.Duration(secs) * time.Second)
	}

	publisher, err := newEventPublisher(cfg)
	if err != nil {
		return nil, nil, err
	}
	if publisher != nil {
		search.SetEventPublisher(publisher)
	}

	return search, airline, nil
}

// newTravelClient returns nil when no base URL is configured. Searches then
// fail with domain.ErrSearchUnavailable and airline names come from the
// static table.
func newTravelClient(cfg driven.ConfigStore) (*travelapi.Client, error) {
	baseURL := envOr(envAPIBaseURL, cfg.GetString(keyAPIBaseURL))
	if baseURL == "" {
		logger.Debug("%s not set, travel API disabled", keyAPIBaseURL)
		return nil, nil
	}

	apiCfg := apiConfig(cfg)
	apiCfg.BaseURL = baseURL

	client, err := travelapi.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("travel api: %w", err)
	}
	if !apiCfg.HasCredentials() {
		logger.Warn("API credentials not set, requests are sent unauthenticated")
	}
	return client, nil
}

func apiConfig(cfg driven.ConfigStore) travelapi.Config {
	c := travelapi.Config{
		TokenURL:      cfg.GetString(keyAPITokenURL),
		ClientID:      envOr(envAPIClientID, cfg.GetString(keyAPIClientID)),
		ClientSecret:  envOr(envAPIClientSecret, cfg.GetString(keyAPIClientSecret)),
		RatePerSecond: cfg.GetFloat(keyAPIRatePerSecond),
		Timeout:       time.Duration(cfg.GetInt(keyAPITimeout)) * time.Second,
		AirlinesPath:  cfg.GetString(keyAPIAirlinesPath),
		UserAgent:     "weyfar/" + version,
		Paths:         make(map[domain.SearchKind]string),
	}
	for _, kind := range domain.AllSearchKinds() {
		if p := cfg.GetString(keyAPIPathsPrefix + string(kind)); p != "" {
			c.Paths[kind] = p
		}
	}
	return c
}

func newAirlineCache(ctx context.Context, cfg driven.ConfigStore) (driven.AirlineNameCache, error) {
	backend := cfg.GetString(keyAirlineCache)
	switch backend {
	case "", cacheMemory:
		return memory.NewAirlineCache(), nil

	case cacheSQLite:
		store, err := sqlite.NewStore(cfg.GetString(keySQLiteDir))
		if err != nil {
			return nil, fmt.Errorf("airline cache: %w", err)
		}
		closers = append(closers, store.Close)
		logger.Debug("Airline cache: sqlite %s", store.Path())
		return store.AirlineCache(), nil

	case cacheRedis:
		addr := cfg.GetString(keyRedisAddr)
		if addr == "" {
			addr = defaultRedisAddr
		}
		cache, closeFn, err := redis.Dial(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("airline cache: %w", err)
		}
		closers = append(closers, closeFn)
		logger.Debug("Airline cache: redis %s", addr)
		return cache, nil

	default:
		return nil, fmt.Errorf("%w: %s must be %s, %s or %s, got %q",
			domain.ErrInvalidInput, keyAirlineCache, cacheMemory, cacheSQLite, cacheRedis, backend)
	}
}

// newEventPublisher returns nil when no Kafka brokers are configured.
func newEventPublisher(cfg driven.ConfigStore) (driven.SearchEventPublisher, error) {
	brokers := cfg.GetStringSlice(keyKafkaBrokers)
	if len(brokers) == 0 {
		return nil, nil
	}
	publisher, err := kafka.NewPublisher(brokers, cfg.GetString(keyKafkaTopic))
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}
	closers = append(closers, publisher.Close)
	logger.Debug("Search events: kafka topic %s", publisher.Topic())
	return publisher, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
