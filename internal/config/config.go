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
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the rider/venue record store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// MatchWeights maps each compatibility factor to its relative importance.
// Weights need not sum to any particular value; the aggregator normalizes
// over the factors that produced a known result.
type MatchWeights struct {
	Financial      float64 `yaml:"financial" mapstructure:"financial"`
	StageSize      float64 `yaml:"stage_size" mapstructure:"stage_size"`
	InputChannels  float64 `yaml:"input_channels" mapstructure:"input_channels"`
	HouseDrums     float64 `yaml:"house_drums" mapstructure:"house_drums"`
	AgeRestriction float64 `yaml:"age_restriction" mapstructure:"age_restriction"`
}

// MatchConfig configures the matching engine's caller-side knobs.
type MatchConfig struct {
	Weights     MatchWeights `yaml:"weights" mapstructure:"weights"`
	Concurrency int          `yaml:"concurrency" mapstructure:"concurrency"`
	Limit       int          `yaml:"limit" mapstructure:"limit"`
}

// ServerConfig configures the HTTP compatibility server.
type ServerConfig struct {
	Port         int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
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
	v.SetEnvPrefix("MATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "match.db")
	v.SetDefault("match.weights.financial", 30.0)
	v.SetDefault("match.weights.stage_size", 20.0)
	v.SetDefault("match.weights.input_channels", 15.0)
	v.SetDefault("match.weights.house_drums", 20.0)
	v.SetDefault("match.weights.age_restriction", 15.0)
	v.SetDefault("match.concurrency", 8)
	v.SetDefault("match.limit", 25)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20.0)
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
