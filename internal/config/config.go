package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// EmbedderConfig selects and parameterizes the image-embedding provider.
// Provider "openai" also covers any OpenAI-compatible embedding server
// (Ollama, a self-hosted CLIP endpoint) via BaseURL.
type EmbedderConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	FetchTimeoutMS int    `toml:"fetch_timeout_ms"`
}

// LLMConfig configures the optional text model used for profile summaries.
// Leaving Provider empty disables summaries.
type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

// MatchingConfig tunes duplicate detection. Zero values fall back to the
// built-in defaults (threshold 0.8, window 0.01 x 0.012 degrees).
type MatchingConfig struct {
	Threshold float64 `toml:"threshold"`
	LatRange  float64 `toml:"lat_range"`
	LngRange  float64 `toml:"lng_range"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Embedder EmbedderConfig `toml:"embedder"`
	LLM      LLMConfig      `toml:"llm"`
	Matching MatchingConfig `toml:"matching"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
