package metrics

// Config controls the Prometheus metrics endpoint.
type Config struct {
	// Address is the listen address of the metrics HTTP server,
	// e.g. ":9090" or "127.0.0.1:9100".
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// EnableDefaultCollectors registers the built-in Go runtime and process
	// collectors alongside the pipeline metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName is attached as a "service" label to every metric.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:                 ":9090",
		EnableDefaultCollectors: true,
		ServiceName:             "stylelens",
	}
}
