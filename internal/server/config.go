package server

import "github.com/caarlos0/env/v11"

// Config holds server settings parsed from environment variables.
type Config struct {
	Addr            string `env:"HANDREPLAY_ADDR" envDefault:":8090"`
	SendBuffer      int    `env:"HANDREPLAY_SEND_BUFFER" envDefault:"64"`
	AllowAnyOrigin  bool   `env:"HANDREPLAY_ALLOW_ANY_ORIGIN" envDefault:"false"`
	ShutdownSeconds int    `env:"HANDREPLAY_SHUTDOWN_SECONDS" envDefault:"5"`
}

// LoadConfig parses configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
