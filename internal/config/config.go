package config

import (
	"errors"
	"flag"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Address   string `env:"RUN_ADDRESS"        envDefault:"localhost:8080"`
	Database  string `env:"DATABASE_URI"`
	JWTSecret string `env:"JWT_SECRET"`
	BotToken  string `env:"TELEGRAM_BOT_TOKEN"`
	LogLvl    string `env:"LOG_LVL"            envDefault:"info"`
}

// New loads configuration from .env, environment and flags, in that order.
// Missing secrets fail here, at startup, rather than per request.
func New() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.Database, "d", cfg.Database, "database DSN")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.Parse()

	if cfg.Database == "" {
		return nil, errors.New("database not configured")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret not configured")
	}
	if cfg.BotToken == "" {
		return nil, errors.New("telegram bot not configured")
	}

	return cfg, nil
}
