package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cryptosocialbot/pkg/config"
	"cryptosocialbot/pkg/llm"
)

// Config stores environment configuration for the bot.
type Config struct {
	Port                     string
	TwitterAPIKey            string
	TwitterAPISecretKey      string
	TwitterAccessToken       string
	TwitterAccessTokenSecret string
	CryptoPanicAPIKey        string
	CryptoPanicAPIURL        string
	LLM                      llm.Config
	ImagesDir                string
	FedjaPromptsPath         string
	GeneralPromptsPath       string
	FedjaInterval            time.Duration
	GeneralInterval          time.Duration
	FedjaProbability         float64
}

// ConfigError lists every missing credential so a bad deployment shows the
// full set in a single startup failure.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// LoadConfig loads the bot configuration from environment variables.
func LoadConfig() Config {
	llmCfg := llm.LoadConfig()
	if llmCfg.Model == "" {
		llmCfg.Model = "gpt-3.5-turbo"
	}
	if llmCfg.APIKey == "" {
		llmCfg.APIKey = config.GetEnv("OPENAI_API_KEY", config.GetEnv("DEEPSEEK_API_KEY", ""))
	}
	if llmCfg.MaxTokens <= 0 {
		llmCfg.MaxTokens = 1000
	}

	return Config{
		Port:                     config.GetEnv("PORT", "10000"),
		TwitterAPIKey:            config.GetEnv("TWITTER_API_KEY", ""),
		TwitterAPISecretKey:      config.GetEnv("TWITTER_API_SECRET_KEY", ""),
		TwitterAccessToken:       config.GetEnv("TWITTER_ACCESS_TOKEN", ""),
		TwitterAccessTokenSecret: config.GetEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		CryptoPanicAPIKey:        config.GetEnv("CRYPTOPANIC_API_KEY", ""),
		CryptoPanicAPIURL:        config.GetEnv("CRYPTOPANIC_API_URL", ""),
		LLM:                      llmCfg,
		ImagesDir:                config.GetEnv("IMAGES_DIR", "images"),
		FedjaPromptsPath:         config.GetEnv("FEDJA_PROMPTS_FILE", "fedja_prompts.txt"),
		GeneralPromptsPath:       config.GetEnv("GENERAL_PROMPTS_FILE", "general_crypto_prompts.txt"),
		FedjaInterval:            config.GetEnvDuration("FEDJA_INTERVAL", 12*time.Hour),
		GeneralInterval:          config.GetEnvDuration("GENERAL_INTERVAL", 30*time.Minute),
		FedjaProbability:         parseFloat(config.GetEnv("FEDJA_PROBABILITY", ""), 0.2),
	}
}

// Validate checks that every credential the bot posts with is present.
func (c Config) Validate() error {
	var missing []string
	if c.TwitterAPIKey == "" {
		missing = append(missing, "TWITTER_API_KEY")
	}
	if c.TwitterAPISecretKey == "" {
		missing = append(missing, "TWITTER_API_SECRET_KEY")
	}
	if c.TwitterAccessToken == "" {
		missing = append(missing, "TWITTER_ACCESS_TOKEN")
	}
	if c.TwitterAccessTokenSecret == "" {
		missing = append(missing, "TWITTER_ACCESS_TOKEN_SECRET")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}
	if c.CryptoPanicAPIKey == "" {
		missing = append(missing, "CRYPTOPANIC_API_KEY")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
