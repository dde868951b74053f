package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Auth    AuthConfig    `yaml:"auth" mapstructure:"auth"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the quotation backend endpoint.
type APIConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AuthConfig configures the bearer credential sources. Token, when
// set, wins; otherwise the token file written by the login command is
// consulted.
type AuthConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	TokenFile string `yaml:"token_file" mapstructure:"token_file"`
}

// CacheConfig configures the in-memory response cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
	TTLSecs    int `yaml:"ttl_secs" mapstructure:"ttl_secs"`
}

// DisplayConfig configures rendering defaults.
type DisplayConfig struct {
	Locale   string `yaml:"locale" mapstructure:"locale"`
	Currency string `yaml:"currency" mapstructure:"currency"`
}

// HistoryConfig configures the local upload log.
type HistoryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the local preview server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("QUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "http://localhost:5001/api")
	v.SetDefault("api.timeout_secs", 60)
	v.SetDefault("auth.token_file", ".quote-cli-token")
	v.SetDefault("cache.max_entries", 256)
	v.SetDefault("cache.ttl_secs", 300)
	v.SetDefault("display.locale", "ja-JP")
	v.SetDefault("display.currency", "JPY")
	v.SetDefault("history.path", "quote-history.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
