package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("BEAUTYBOT_SERVER_PORT")
		os.Unsetenv("BEAUTYBOT_SERVER_ENVIRONMENT")
		os.Unsetenv("BEAUTYBOT_OPENAI_API_KEY")
		os.Unsetenv("BEAUTYBOT_OPENAI_BASE_URL")
		os.Unsetenv("BEAUTYBOT_OPENAI_MODEL")
		os.Unsetenv("BEAUTYBOT_OPENAI_REQUESTS_PER_MINUTE")
		os.Unsetenv("BEAUTYBOT_SCRAPER_BASE_URL")
		os.Unsetenv("BEAUTYBOT_SCRAPER_TIMEOUT")
		os.Unsetenv("BEAUTYBOT_SCRAPER_DELAY")
		os.Unsetenv("BEAUTYBOT_RECOMMEND_TOP_N")
		os.Unsetenv("BEAUTYBOT_RECOMMEND_TEMPERATURE")
		os.Unsetenv("BEAUTYBOT_RECOMMEND_MAX_TOKENS")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API key
		os.Setenv("BEAUTYBOT_OPENAI_API_KEY", "test-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.OpenAI.BaseURL != "https://api.openai.com" {
			t.Errorf("OpenAI.BaseURL = %s, want https://api.openai.com", cfg.OpenAI.BaseURL)
		}
		if cfg.OpenAI.Model != "gpt-4" {
			t.Errorf("OpenAI.Model = %s, want gpt-4", cfg.OpenAI.Model)
		}
		if cfg.Scraper.BaseURL != "https://www.sephora.com" {
			t.Errorf("Scraper.BaseURL = %s, want https://www.sephora.com", cfg.Scraper.BaseURL)
		}
		if cfg.Scraper.Timeout != 10*time.Second {
			t.Errorf("Scraper.Timeout = %v, want 10s", cfg.Scraper.Timeout)
		}
		if cfg.Scraper.Delay != 1500*time.Millisecond {
			t.Errorf("Scraper.Delay = %v, want 1.5s", cfg.Scraper.Delay)
		}
		if cfg.Recommend.TopN != 10 {
			t.Errorf("Recommend.TopN = %d, want 10", cfg.Recommend.TopN)
		}
		if cfg.Recommend.Temperature != 0.7 {
			t.Errorf("Recommend.Temperature = %v, want 0.7", cfg.Recommend.Temperature)
		}
		if cfg.Recommend.MaxTokens != 1000 {
			t.Errorf("Recommend.MaxTokens = %d, want 1000", cfg.Recommend.MaxTokens)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("BEAUTYBOT_SERVER_PORT", "9090")
		os.Setenv("BEAUTYBOT_SERVER_ENVIRONMENT", "production")
		os.Setenv("BEAUTYBOT_OPENAI_API_KEY", "custom-api-key")
		os.Setenv("BEAUTYBOT_OPENAI_BASE_URL", "https://proxy.example.com")
		os.Setenv("BEAUTYBOT_OPENAI_MODEL", "gpt-4-turbo")
		os.Setenv("BEAUTYBOT_SCRAPER_DELAY", "250ms")
		os.Setenv("BEAUTYBOT_RECOMMEND_MAX_TOKENS", "500")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.OpenAI.APIKey != "custom-api-key" {
			t.Errorf("OpenAI.APIKey = %s, want custom-api-key", cfg.OpenAI.APIKey)
		}
		if cfg.OpenAI.BaseURL != "https://proxy.example.com" {
			t.Errorf("OpenAI.BaseURL = %s, want https://proxy.example.com", cfg.OpenAI.BaseURL)
		}
		if cfg.OpenAI.Model != "gpt-4-turbo" {
			t.Errorf("OpenAI.Model = %s, want gpt-4-turbo", cfg.OpenAI.Model)
		}
		if cfg.Scraper.Delay != 250*time.Millisecond {
			t.Errorf("Scraper.Delay = %v, want 250ms", cfg.Scraper.Delay)
		}
		if cfg.Recommend.MaxTokens != 500 {
			t.Errorf("Recommend.MaxTokens = %d, want 500", cfg.Recommend.MaxTokens)
		}
	})

	t.Run("fails without API key", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want missing API key error")
		}
	})

	t.Run("fails on out-of-range temperature", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("BEAUTYBOT_OPENAI_API_KEY", "test-key")
		os.Setenv("BEAUTYBOT_RECOMMEND_TEMPERATURE", "3.5")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want temperature validation error")
		}
	})

	t.Run("fails on non-positive max tokens", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("BEAUTYBOT_OPENAI_API_KEY", "test-key")
		os.Setenv("BEAUTYBOT_RECOMMEND_MAX_TOKENS", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want max_tokens validation error")
		}
	})
}
