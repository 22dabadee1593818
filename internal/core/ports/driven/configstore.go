package driven

// ConfigStore provides access to application configuration.
// Keys are dotted paths such as "api.base_url". Typed getters return the
// zero value when a key is missing or holds an incompatible type.
type ConfigStore interface {
	// Get retrieves a raw value and reports whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	GetString(key string) string

	// GetInt retrieves an integer value.
	GetInt(key string) int

	// GetFloat retrieves a numeric value as float64.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value.
	GetBool(key string) bool

	// GetStringSlice retrieves a list of strings. A single string is
	// split on commas.
	GetStringSlice(key string) []string

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	// Keys returns all keys in sorted order.
	Keys() []string

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
