// Package config loads runtime settings from an optional maitred.yaml file
// and MAITRED_* environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tunables for the agent process.
type Config struct {
	// DataDir is where the embedded databases live.
	DataDir string `mapstructure:"data_dir"`
	// Model is the language-model identifier passed to the provider.
	Model string `mapstructure:"model"`
	// RequestTimeout bounds each individual model call.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// HistoryWindow caps how many persisted messages are reloaded per turn.
	HistoryWindow int `mapstructure:"history_window"`
	// StepLimit bounds state-machine transitions per turn.
	StepLimit int `mapstructure:"step_limit"`
	// Suggestions controls the follow-up-suggestions block in replies.
	Suggestions bool `mapstructure:"suggestions"`
	// Debug lowers the log level.
	Debug bool `mapstructure:"debug"`
}

const (
	defaultDataDir        = "data"
	defaultHistoryWindow  = 20
	defaultStepLimit      = 12
	defaultRequestTimeout = 60 * time.Second
)

// Load reads configuration, layering defaults, an optional config file, and
// environment overrides (MAITRED_DATA_DIR, MAITRED_MODEL, ...). A missing
// config file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("model", "")
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("history_window", defaultHistoryWindow)
	v.SetDefault("step_limit", defaultStepLimit)
	v.SetDefault("suggestions", true)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("MAITRED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("maitred")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		// No file present is fine: defaults plus env are enough.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = defaultHistoryWindow
	}
	if cfg.StepLimit <= 0 {
		cfg.StepLimit = defaultStepLimit
	}
	return cfg, nil
}
