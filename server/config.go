package main

import (
	"time"

	"gridsnake/config"
	"gridsnake/engine"
)

// Server configuration constants
const (
	// Server
	ServerPort    = ":8080"
	StaticDir     = "../client"
	WebSocketPath = "/ws"

	// Limits
	MaxSessions   = 64 // concurrent websocket sessions
	IPCooldownSec = 2  // min seconds between connections from one IP

	// Environment
	EnvPrefix = "SNAKE_"

	// Query parameter selecting the state frame codec ("json" or "msgpack")
	CodecParam = "codec"

	writeWait      = 2 * time.Second
	maxMessageSize = 512
)

// Settings is the resolved server configuration.
type Settings struct {
	Addr        string
	StaticDir   string
	Defaults    engine.Config // used for join fields the client leaves at zero
	MaxSessions int
	IPCooldown  time.Duration
}

// LoadSettings merges .env, the environment and the constants above.
func LoadSettings() (Settings, error) {
	config.LoadDotEnv()

	defaults, err := config.Session(EnvPrefix)
	if err != nil {
		return Settings{}, err
	}
	maxSessions, err := config.Int(EnvPrefix+"MAX_SESSIONS", MaxSessions)
	if err != nil {
		return Settings{}, err
	}
	cooldown, err := config.Int(EnvPrefix+"IP_COOLDOWN_SEC", IPCooldownSec)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Addr:        config.String(EnvPrefix+"ADDR", ServerPort),
		StaticDir:   config.String(EnvPrefix+"STATIC_DIR", StaticDir),
		Defaults:    defaults,
		MaxSessions: maxSessions,
		IPCooldown:  time.Duration(cooldown) * time.Second,
	}, nil
}

// sessionConfig overlays a join request on the defaults.
func (s Settings) sessionConfig(msg ClientMessage) (engine.Config, error) {
	cfg := s.Defaults
	if msg.Cols != 0 {
		cfg.Cols = msg.Cols
	}
	if msg.Rows != 0 {
		cfg.Rows = msg.Rows
	}
	if msg.Players != 0 {
		cfg.Players = msg.Players
	}
	return cfg, cfg.Validate()
}
