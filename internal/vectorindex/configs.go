package vectorindex

import "time"

// Config holds connection settings for the Qdrant product index.
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Host string `yaml:"host" env:"QDRANT_HOST"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	APIKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	UseTLS bool `yaml:"use_tls" env:"QDRANT_USE_TLS"`

	// Collection holding the product embeddings.
	Collection string `yaml:"collection" env:"QDRANT_COLLECTION"`

	// Timeout bounds a single search request.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:       "localhost",
		Port:       6334,
		Collection: "products",
		Timeout:    5 * time.Second,
	}
}
