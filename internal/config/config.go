// Package config loads application configuration from the environment.
// A local .env file is read first (when present), then defaults are
// layered under APP_-prefixed environment variables with koanf.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DBConfig holds the MySQL connection settings for the Sakila database.
type DBConfig struct {
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	Name string `koanf:"name"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name
}

// AMQPConfig holds the message broker settings. An empty URL disables
// event publishing and the background consumer.
type AMQPConfig struct {
	URL string `koanf:"url"`
}

// Config holds all runtime configuration values. Each field maps to an
// APP_-prefixed environment variable (APP_PORT, APP_DB_HOST,
// APP_LOG_LEVEL, APP_AMQP_URL, ...).
type Config struct {
	Env  string     `koanf:"env"`  // application environment ("dev", "prod")
	Port string     `koanf:"port"` // HTTP port to listen on
	Log  LogConfig  `koanf:"log"`
	DB   DBConfig   `koanf:"db"`
	AMQP AMQPConfig `koanf:"amqp"`
}

func defaults() Config {
	return Config{
		Env:  "dev",
		Port: "4000",
		Log:  LogConfig{Level: "info"},
		DB: DBConfig{
			User: "root",
			Host: "127.0.0.1",
			Port: "3306",
			Name: "sakila",
		},
	}
}

// Load builds the configuration: defaults first, then APP_* environment
// variables. It returns an error when a required value ends up empty.
func Load() (Config, error) {
	// Best effort; a missing .env simply means the environment is already set.
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config defaults: %w", err)
	}
	if err := k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "_", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}

	for key, v := range map[string]string{
		"APP_PORT":    cfg.Port,
		"APP_DB_USER": cfg.DB.User,
		"APP_DB_HOST": cfg.DB.Host,
		"APP_DB_PORT": cfg.DB.Port,
		"APP_DB_NAME": cfg.DB.Name,
	} {
		if v == "" {
			return Config{}, fmt.Errorf("missing required config: %s", key)
		}
	}
	return cfg, nil
}
