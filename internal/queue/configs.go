package queue

// Config holds the RabbitMQ settings for the analysis job queue.
type Config struct {
	Host     string `yaml:"host" env:"RABBIT_HOST"`
	Port     uint   `yaml:"port" env:"RABBIT_PORT"`
	User     string `yaml:"user" env:"RABBIT_USER"`
	Password string `yaml:"password" env:"RABBIT_PASSWORD"`

	Exchange   string `yaml:"exchange" env:"RABBIT_EXCHANGE"`
	Queue      string `yaml:"queue" env:"RABBIT_QUEUE"`
	RoutingKey string `yaml:"routing_key" env:"RABBIT_ROUTING_KEY"`

	// PrefetchCount bounds unacked deliveries per consumer. It should stay at
	// or below the pipeline's worker concurrency so the broker does not hand
	// this instance more analyses than it can run.
	PrefetchCount int `yaml:"prefetch_count" env:"RABBIT_PREFETCH_COUNT"`

	DeadLetterExchange string `yaml:"dead_letter_exchange" env:"RABBIT_DLX"`
	DeadLetterQueue    string `yaml:"dead_letter_queue" env:"RABBIT_DLQ"`
}

// DefaultConfig returns sensible local-development defaults.
func DefaultConfig() Config {
	return Config{
		Host:               "localhost",
		Port:               5672,
		User:               "guest",
		Password:           "guest",
		Exchange:           "stylelens",
		Queue:              "analysis-jobs",
		RoutingKey:         "analysis.submitted",
		PrefetchCount:      4,
		DeadLetterExchange: "stylelens-dlx",
		DeadLetterQueue:    "analysis-jobs-dead",
	}
}
