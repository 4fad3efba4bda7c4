package statuscache

import "time"

// Config holds Redis connection settings for the status cache.
type Config struct {
	Host     string `yaml:"host" env:"REDIS_HOST"`
	Port     int    `yaml:"port" env:"REDIS_PORT"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`

	// TTL bounds the lifetime of every status record. Clients polling
	// after expiry fall back to the durable store.
	TTL time.Duration `yaml:"ttl" env:"STATUS_CACHE_TTL"`

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
}

// DefaultConfig provides sensible defaults. The 24h TTL matches the product
// requirement that analysis progress is pollable for a day after submission.
func DefaultConfig() Config {
	return Config{
		Host:        "localhost",
		Port:        6379,
		DB:          0,
		TTL:         24 * time.Hour,
		DialTimeout: 5 * time.Second,
	}
}
