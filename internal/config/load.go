package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. LEXICARD_DATABASE_URL for database.url.
const EnvPrefix = "LEXICARD"

// defaults lists every known key with its default value. Keys without a
// meaningful default are registered with a zero value so that viper binds
// them to the environment.
var defaults = map[string]any{
	"server.port":                           8080,
	"server.log_level":                      "info",
	"server.log_format":                     "json",
	"server.shutdown_timeout_seconds":       10,
	"database.url":                          "",
	"database.max_open_conns":               25,
	"database.max_idle_conns":               25,
	"database.conn_max_lifetime_minutes":    5,
	"database.auto_migrate":                 false,
	"auth.jwt_secret":                       "",
	"auth.token_lifetime_minutes":           60 * 24,
	"auth.bcrypt_cost":                      10,
	"llm.gemini_api_key":                    "",
	"llm.model_name":                        "gemini-2.0-flash",
	"llm.max_retries":                       3,
	"llm.retry_delay_seconds":               2,
	"llm.meaning_language":                  "Vietnamese",
	"timeout.sweep_interval_minutes":        15,
	"timeout.sweep_deadline_seconds":        60,
	"timeout.default_word_timeout_minutes":  24 * 60,
	"pronunciation.enabled":                 true,
	"pronunciation.base_url":                "https://dictionary.cambridge.org",
	"pronunciation.request_timeout_seconds": 5,
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
