package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("deserialize.scalar_failure"); implementations
// handle persistence and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, empty if missing or not a string.
	GetString(key string) string

	// GetStringSlice retrieves a string slice value, nil if missing.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Keys returns all configured keys in sorted order.
	Keys() []string

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
