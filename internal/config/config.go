// Package config loads server configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable of the server process.
type Config struct {
	ListenAddr    string        `envconfig:"LISTEN_ADDR" default:":5000"`
	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"roomchat"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"15s"`
	StaleAfter    time.Duration `envconfig:"STALE_AFTER" default:"10s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
