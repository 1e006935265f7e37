// Package config loads server settings from the environment.
package config

import "github.com/caarlos0/env/v11"

type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	ClientDir string `env:"CLIENT_DIR" envDefault:"./client"`

	RoomCapacity      int `env:"ROOM_CAPACITY" envDefault:"4"`
	RoundSeconds      int `env:"ROUND_SECONDS" envDefault:"90"`
	ResetDelaySeconds int `env:"RESET_DELAY_SECONDS" envDefault:"5"`
}

func Load() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
