// Package config loads journal settings from the .journal file and the
// JOURNAL_* environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	Path            string `mapstructure:"path"`
	Backend         string `mapstructure:"backend"`
	TimestampLayout string `mapstructure:"timestamp_layout"`
	Log             Log    `mapstructure:"log"`
	Gemini          Gemini `mapstructure:"gemini"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

type Gemini struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

const (
	DefaultPath  = "~/.journal"
	DefaultModel = "gemini-2.0-flash"
)

// Load reads .journal.{yaml,json,toml} from $JOURNAL_CONFIG_PATH or the
// working directory, then applies JOURNAL_* environment overrides, e.g.
// JOURNAL_GEMINI_API_KEY. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("backend", "diskv")
	v.SetDefault("timestamp_layout", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", DefaultModel)
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.timeout", time.Duration(0))

	v.SetConfigName(".journal")
	v.SetEnvPrefix("JOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("JOURNAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return cfg, nil
}

// BasePath is Path with a leading ~ expanded.
func (c *Config) BasePath() string {
	p, err := homedir.Expand(c.Path)
	if err != nil {
		return c.Path
	}
	return p
}
