package embedding

import "time"

// Config holds the embedding service settings.
type Config struct {
	Endpoint  string        `yaml:"endpoint" env:"EMBEDDING_ENDPOINT"`
	APIKey    string        `yaml:"api_key" env:"EMBEDDING_API_KEY"`
	Timeout   time.Duration `yaml:"timeout" env:"EMBEDDING_TIMEOUT"`
	Dimension int           `yaml:"dimension" env:"EMBEDDING_DIMENSION"`
}

// DefaultConfig returns sensible local-development defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "http://localhost:8867",
		Timeout:   30 * time.Second,
		Dimension: 512,
	}
}
