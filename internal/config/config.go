package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/spf13/viper"
)

// Output formats accepted by the CLI.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

// Config holds hwscore configuration.
type Config struct {
	LogLevel      string        `mapstructure:"log_level"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
	Output        string        `mapstructure:"output"`
	DatabasePath  string        `mapstructure:"database"`
	Listen        string        `mapstructure:"listen"`
	HTTPListen    string        `mapstructure:"http_listen"`
	EnableSwagger bool          `mapstructure:"enable_swagger"`
	ClientSecret  string        `mapstructure:"client_secret"`
	ApiSecret     string        `mapstructure:"api_secret"`
	RetentionDays int           `mapstructure:"retention_days"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

// Load reads configuration from file and environment.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("hwscore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if pd := os.Getenv("ProgramData"); pd != "" {
			v.AddConfigPath(filepath.Join(pd, "hwscore"))
		}
	}

	v.SetDefault("log_level", "info")
	v.SetDefault("probe_timeout", "30s")
	v.SetDefault("output", OutputJSON)
	v.SetDefault("database", "hwscore.db")
	v.SetDefault("listen", ":9650")
	v.SetDefault("http_listen", ":9651")
	v.SetDefault("enable_swagger", true)
	v.SetDefault("client_secret", "")
	v.SetDefault("api_secret", "")
	v.SetDefault("retention_days", 0)
	v.SetDefault("purge_interval", "24h")

	v.SetEnvPrefix("HWSCORE")
	v.AutomaticEnv()

	errFactory := errors.New()

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; an explicit or broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, fmt.Errorf("unmarshal config: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ProbeTimeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, fmt.Sprintf("probe_timeout must be positive, got %s", c.ProbeTimeout))
	}
	switch strings.ToLower(c.Output) {
	case OutputJSON, OutputYAML, OutputText:
		c.Output = strings.ToLower(c.Output)
	default:
		return errFactory.WithData(errors.ErrInvalidConfig, fmt.Sprintf("unknown output format %q", c.Output))
	}
	if c.RetentionDays < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, "retention_days must not be negative")
	}
	if c.RetentionDays > 0 && c.PurgeInterval <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, "purge_interval must be positive when retention is enabled")
	}

	return nil
}
