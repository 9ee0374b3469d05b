package llm

// Defaults for the xAI Grok endpoint. Any OpenAI-compatible API works by
// overriding BaseURL and the model names.
const (
	DefaultBaseURL        = "https://api.x.ai/v1"
	DefaultModel          = "grok-3"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultMaxTokens      = 4500
)

// Config holds the model configuration shared by all phases.
type Config struct {
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float32
	MaxTokens      int
}

// DefaultConfig returns the default Grok configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    0.0,
		MaxTokens:      DefaultMaxTokens,
	}
}

// WithModel returns a copy of the config using the given chat model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}

// WithTemperature returns a copy of the config with the given temperature.
func (c *Config) WithTemperature(temp float32) *Config {
	out := *c
	out.Temperature = temp
	return &out
}
