// Package config reads session settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gridsnake/engine"
)

// Environment keys, prefixed by the caller (e.g. SNAKE_COLS)
const (
	KeyCols    = "COLS"
	KeyRows    = "ROWS"
	KeyPlayers = "PLAYERS"
)

// LoadDotEnv loads .env files without overriding variables already set. A
// missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: could not load .env: %v", err)
	}
}

// Session builds an engine config from PREFIX_COLS, PREFIX_ROWS and
// PREFIX_PLAYERS over engine.DefaultConfig and validates it.
func Session(prefix string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	var err error
	if cfg.Cols, err = Int(prefix+KeyCols, cfg.Cols); err != nil {
		return cfg, err
	}
	if cfg.Rows, err = Int(prefix+KeyRows, cfg.Rows); err != nil {
		return cfg, err
	}
	if cfg.Players, err = Int(prefix+KeyPlayers, cfg.Players); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Int returns the integer in key, or def when unset.
func Int(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return n, nil
}

// String returns the value of key, or def when unset.
func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
