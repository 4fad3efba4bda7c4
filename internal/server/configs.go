package server

// Config controls the public HTTP API listener.
type Config struct {
	// Address is the listen address, e.g. ":8080".
	Address string `yaml:"address" env:"SERVER_ADDRESS"`

	// MaxBodySize caps request bodies, in echo's size notation ("10M").
	// Uploads larger than this are rejected before reaching a handler.
	MaxBodySize string `yaml:"max_body_size" env:"SERVER_MAX_BODY_SIZE"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     ":8080",
		MaxBodySize: "10M",
	}
}
