package main

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds bingod configuration. Environment variables fill defaults,
// flags override.
type Config struct {
	Addr      string `env:"BINGOD_ADDR" envDefault:":8080"`
	StatePath string `env:"BINGOD_STATE_PATH"`
	Admin     string `env:"BINGOD_ADMIN" envDefault:"admin"`
	Escrow    string `env:"BINGOD_ESCROW" envDefault:"escrow"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "bbolt state file path (empty for in-memory)")
	fs.StringVar(&cfg.Admin, "admin", cfg.Admin, "administrator account")
	fs.StringVar(&cfg.Escrow, "escrow", cfg.Escrow, "escrow account")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
