package detector

import "time"

// Config holds the detection service settings.
type Config struct {
	Endpoint      string        `yaml:"endpoint" env:"DETECTOR_ENDPOINT"`
	APIKey        string        `yaml:"api_key" env:"DETECTOR_API_KEY"`
	Timeout       time.Duration `yaml:"timeout" env:"DETECTOR_TIMEOUT"`
	MinConfidence float64       `yaml:"min_confidence" env:"DETECTOR_MIN_CONFIDENCE"`
}

// DefaultConfig returns sensible local-development defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:      "http://localhost:8866",
		Timeout:       30 * time.Second,
		MinConfidence: 0.5,
	}
}
