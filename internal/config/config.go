// Package config loads runtime settings, env-first with an optional
// rinkrat.yaml alongside the binary.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is everything the server needs to boot.
type Config struct {
	Port     string `mapstructure:"port"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`

	SimSeed         uint64  `mapstructure:"sim_seed"`
	ScheduleDensity float64 `mapstructure:"schedule_density"`
	GamesPerMatchup int     `mapstructure:"games_per_matchup"`

	// AutosaveCron is a cron expression; empty disables the flusher.
	AutosaveCron string `mapstructure:"autosave_cron"`
}

// LoadConfig reads the environment and optional config file.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8090")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("sim_seed", 1)
	v.SetDefault("schedule_density", 0.60)
	v.SetDefault("games_per_matchup", 2)
	v.SetDefault("autosave_cron", "@every 5m")

	v.SetConfigName("rinkrat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.ScheduleDensity <= 0 || cfg.ScheduleDensity > 1 {
		return nil, fmt.Errorf("schedule_density %.2f out of (0,1]", cfg.ScheduleDensity)
	}
	if cfg.GamesPerMatchup < 1 {
		return nil, fmt.Errorf("games_per_matchup must be >= 1")
	}
	return &cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
