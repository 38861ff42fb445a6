package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	OpenAI    OpenAIConfig
	Scraper   ScraperConfig
	Recommend RecommendConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	Model             string `mapstructure:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// ScraperConfig holds Sephora scraper configuration
type ScraperConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Delay   time.Duration `mapstructure:"delay"`
}

// RecommendConfig holds recommendation pipeline configuration
type RecommendConfig struct {
	TopN        int     `mapstructure:"top_n"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/beautybot/")

	// Environment variable settings
	v.SetEnvPrefix("BEAUTYBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// OpenAI defaults
	// The key default is empty so the env binding exists; validate treats
	// empty as missing
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-4")
	v.SetDefault("openai.requests_per_minute", 60)

	// Scraper defaults
	v.SetDefault("scraper.base_url", "https://www.sephora.com")
	v.SetDefault("scraper.timeout", "10s")
	v.SetDefault("scraper.delay", "1500ms")

	// Recommendation defaults
	v.SetDefault("recommend.top_n", 10)
	v.SetDefault("recommend.temperature", 0.7)
	v.SetDefault("recommend.max_tokens", 1000)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set BEAUTYBOT_OPENAI_API_KEY)")
	}

	if config.Recommend.Temperature < 0 || config.Recommend.Temperature > 2 {
		return fmt.Errorf("recommend temperature must be between 0 and 2, got: %v", config.Recommend.Temperature)
	}

	if config.Recommend.MaxTokens <= 0 {
		return fmt.Errorf("recommend max_tokens must be positive, got: %d", config.Recommend.MaxTokens)
	}

	return nil
}
