package tracer

// Config holds the tracing settings. The OTLP endpoint itself is taken from
// the standard OTEL_EXPORTER_OTLP_* environment variables.
type Config struct {
	ServiceName  string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`
	AppEnv       string `yaml:"app_env" env:"TRACER_APP_ENV"`
	EnableExport bool   `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}

// DefaultConfig returns sensible defaults. Export is off so local runs do
// not need a collector.
func DefaultConfig() Config {
	return Config{
		ServiceName:  "stylelens",
		AppEnv:       "development",
		EnableExport: false,
	}
}
