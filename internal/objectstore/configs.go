package objectstore

import "time"

// Config holds MinIO/S3 connection settings for crop storage.
type Config struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`

	// Bucket holds uploaded originals and per-object crops.
	Bucket string `yaml:"bucket" env:"MINIO_BUCKET"`

	// PublicBaseURL is prepended to object keys when building the URLs
	// stored with detected objects. Usually a CDN or the MinIO endpoint.
	PublicBaseURL string `yaml:"public_base_url" env:"MINIO_PUBLIC_BASE_URL"`

	// Timeout bounds a single put or get.
	Timeout time.Duration `yaml:"timeout" env:"MINIO_TIMEOUT"`
}

// DefaultConfig provides sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Endpoint: "localhost:9000",
		Bucket:   "stylelens",
		Timeout:  30 * time.Second,
	}
}
