package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server        ServerConfig        `mapstructure:"server" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Auth          AuthConfig          `mapstructure:"auth" validate:"required"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Timeout       TimeoutConfig       `mapstructure:"timeout" validate:"required"`
	Pronunciation PronunciationConfig `mapstructure:"pronunciation"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// LLMConfig contains the settings of the word generation integration.
// An empty GeminiAPIKey disables generation endpoints.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name" validate:"required_with=GeminiAPIKey"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
	MeaningLanguage   string `mapstructure:"meaning_language" validate:"required"`
}

// TimeoutConfig controls word timeouts and the reactivation sweep.
type TimeoutConfig struct {
	SweepIntervalMinutes      int `mapstructure:"sweep_interval_minutes" validate:"gt=0"`
	SweepDeadlineSeconds      int `mapstructure:"sweep_deadline_seconds" validate:"gt=0"`
	DefaultWordTimeoutMinutes int `mapstructure:"default_word_timeout_minutes" validate:"gt=0"`
}

// PronunciationConfig controls the dictionary audio lookup performed when words are created.
type PronunciationConfig struct {
	Enabled               bool   `mapstructure:"enabled"`
	BaseURL               string `mapstructure:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}
