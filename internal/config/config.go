// Package config manages application configuration from config.yaml,
// BOT_* environment variables, and defaults, validated with struct tags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration for all components.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	AI         AIConfig         `mapstructure:"ai"`
	Weather    WeatherConfig    `mapstructure:"weather"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Session    SessionConfig    `mapstructure:"session"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds bot transport credentials and authorization lists.
type TelegramConfig struct {
	Token          string  `mapstructure:"token"            validate:"required"`
	AdminID        int64   `mapstructure:"admin_id"         validate:"required,gt=0"`
	AllowedUserIDs []int64 `mapstructure:"allowed_user_ids"`
}

// AIConfig selects and configures the vision/text gateway provider.
type AIConfig struct {
	Provider    string        `mapstructure:"provider"    validate:"oneof=gemini openai"`
	APIKey      string        `mapstructure:"api_key"     validate:"required"`
	Model       string        `mapstructure:"model"       validate:"required"`
	BaseURL     string        `mapstructure:"base_url"    validate:"omitempty,url"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
}

// WeatherConfig configures the Open-Meteo gateway.
type WeatherConfig struct {
	BaseURL  string        `mapstructure:"base_url" validate:"required,url"`
	Timezone string        `mapstructure:"timezone" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout"  validate:"min=1s,max=1m"`
}

// ClassifierConfig locates the exported disease model.
type ClassifierConfig struct {
	ModelPath string `mapstructure:"model_path" validate:"required"`
}

// SessionConfig configures the per-user session file store.
type SessionConfig struct {
	DataDir         string `mapstructure:"data_dir"         validate:"required"`
	DefaultLanguage string `mapstructure:"default_language" validate:"oneof=uz uzc ru en"`
}

// DatabaseConfig configures the SQLite store for reports and history.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig holds the scheduled task table.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables and schedules a single registered task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Load reads configuration from config.yaml (optional) and BOT_*
// environment variables over defaults, then validates the result.
// A missing required credential is a startup error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine, defaults + env cover it.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.temperature", 0.4)
	v.SetDefault("ai.timeout", 2*time.Minute)

	v.SetDefault("weather.base_url", "https://api.open-meteo.com")
	v.SetDefault("weather.timezone", "Asia/Tashkent")
	v.SetDefault("weather.timeout", 10*time.Second)

	v.SetDefault("classifier.model_path", "disease_model/model.bin")

	v.SetDefault("session.data_dir", "users")
	v.SetDefault("session.default_language", "en")

	v.SetDefault("database.path", "storage.db")

	v.SetDefault("scheduler.tasks", map[string]any{
		"sql_maintenance": map[string]any{
			"enabled":  true,
			"schedule": "0 0 4 * * *",
		},
	})
}

// IsUserAuthorized reports whether a user may interact with the bot.
// The admin is always authorized; with a non-empty allow-list only listed
// users are; with an empty list everyone is.
func (c *Config) IsUserAuthorized(userID int64) bool {
	if userID == c.Telegram.AdminID {
		return true
	}
	if len(c.Telegram.AllowedUserIDs) == 0 {
		return true
	}
	for _, id := range c.Telegram.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
