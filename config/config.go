package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Narration NarrationConfig `mapstructure:"narration"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SessionSecret string `mapstructure:"session_secret"`
}

// LLM provider selection for reflection prompt suggestions
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // "ollama" or "openai"
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`   // Optional, defaults to OpenAI API
	MaxTokens int    `mapstructure:"max_tokens"` // Optional, defaults to model's max
	Timeout   int    `mapstructure:"timeout"`
}

type OllamaConfig struct {
	Host    string `mapstructure:"host"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// Narration (text-to-speech) settings for memory playback
type NarrationConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Type            string `mapstructure:"type"`             // "google" or "dummy"
	Voice           string `mapstructure:"voice"`            // e.g. "en-US-Chirp-HD-F"
	CredentialsFile string `mapstructure:"credentials_file"` // optional, falls back to GOOGLE_APPLICATION_CREDENTIALS
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.BindEnv("openai.api_key", "MEMOIRLY_OPENAI_API_KEY")
	viper.BindEnv("openai.model", "OPENAI_MODEL")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("llm.provider", "LLM_PROVIDER")

	viper.SetDefault("database.path", "./memoirly.db")
	viper.SetDefault("auth.session_secret", "change-this-in-production")

	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("ollama.host", "http://localhost:11434")
	viper.SetDefault("ollama.model", "llama3.2")
	viper.SetDefault("ollama.timeout", 30)
	viper.SetDefault("openai.timeout", 30)
	viper.SetDefault("openai.max_tokens", 500)

	viper.SetDefault("narration.enabled", true)
	viper.SetDefault("narration.type", "google")
	viper.SetDefault("narration.voice", "en-US-Chirp-HD-F")

	// Allow environment variables
	viper.SetEnvPrefix("MEMOIRLY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
