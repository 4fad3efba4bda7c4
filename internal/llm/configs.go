package llm

import "time"

// Config holds the vision-language model settings. Any OpenAI-compatible
// endpoint works; BaseURL overrides the provider default.
type Config struct {
	APIKey      string        `yaml:"api_key" env:"LLM_API_KEY"`
	BaseURL     string        `yaml:"base_url" env:"LLM_BASE_URL"`
	Model       string        `yaml:"model" env:"LLM_MODEL"`
	MaxTokens   int           `yaml:"max_tokens" env:"LLM_MAX_TOKENS"`
	Temperature float32       `yaml:"temperature" env:"LLM_TEMPERATURE"`
	Timeout     time.Duration `yaml:"timeout" env:"LLM_TIMEOUT"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o",
		MaxTokens:   1024,
		Temperature: 0.1,
		Timeout:     60 * time.Second,
	}
}
