package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings of the command line tool
type Env struct {
	ResourceDir string `env:"STORTROOPER_RES_PATH"`
	HistoryDB   string `env:"STORTROOPER_HISTORY_DB"`
	MaxRecent   int    `env:"STORTROOPER_MAX_RECENT" envDefault:"10"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env and clamps its values
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	cfg.MaxRecent = clamp(cfg.MaxRecent, MinMaxRecent, MaxMaxRecent)
	return cfg, nil
}
