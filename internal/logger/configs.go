package logger

// Level is the minimum severity the logger will emit.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config holds logger settings.
type Config struct {
	// Minimum log level. Defaults to Info.
	Level Level `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached to every log entry.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "stylelens",
	}
}
