package config

import (
	"os"
	"strconv"
	"time"

	"flarelog/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Weather  WeatherConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// AIConfig holds LLM related settings
type AIConfig struct {
	OpenAIKey           string
	OpenAIModel         string
	BaseURL             string
	SystemContext       string
	MaxTokens           int
	Temperature         float64
	Timeout             time.Duration
	FallbackToHeuristic bool
}

// WeatherConfig holds weather lookup settings
type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	Simulate bool // serve deterministic simulated weather instead of live lookups
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	config.Weather = *loadWeatherConfig()
	config.Server = *loadServerConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	return &DatabaseConfig{URL: url}, nil
}

func loadAIConfig() (*AIConfig, error) {
	model := getEnvOrDefault("LLM_MODEL", "gpt-4o-mini")

	timeout := 60 * time.Second
	if t := getEnvIntOrDefault("LLM_TIMEOUT_SECONDS", 0); t > 0 {
		timeout = time.Duration(t) * time.Second
	}

	temperature := 0.3
	if tempStr := os.Getenv("LLM_TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 64); err == nil {
			temperature = temp
		}
	}

	return &AIConfig{
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         model,
		BaseURL:             os.Getenv("OPENAI_BASE_URL"),
		SystemContext:       getEnvOrDefault("LLM_SYSTEM_CONTEXT", ""),
		MaxTokens:           getEnvIntOrDefault("LLM_MAX_TOKENS", 2000),
		Temperature:         temperature,
		Timeout:             timeout,
		FallbackToHeuristic: getEnvBoolOrDefault("LLM_FALLBACK_TO_HEURISTIC", true),
	}, nil
}

func loadWeatherConfig() *WeatherConfig {
	return &WeatherConfig{
		APIKey:   os.Getenv("WEATHER_API_KEY"),
		BaseURL:  getEnvOrDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		Simulate: getEnvBoolOrDefault("WEATHER_SIMULATE", false),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	// A missing API key is allowed when the heuristic fallback is enabled;
	// every generation request then degrades to local synthesis.
	if config.AI.OpenAIKey == "" && !config.AI.FallbackToHeuristic {
		return errors.ConfigInvalid("OPENAI_API_KEY is required when heuristic fallback is disabled")
	}
	if !config.Weather.Simulate && config.Weather.APIKey == "" {
		return errors.ConfigInvalid("WEATHER_API_KEY is required unless WEATHER_SIMULATE is set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
