// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Remote service credentials live here and are handed to the remote
// writer at construction time; nothing is compiled into the binary.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Remote drivers understood by main.
const (
	DriverHTTP     = "http"
	DriverPostgres = "postgres"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	HTTPServer `yaml:"http_server"`

	LocalQueue LocalQueue `yaml:"local_queue"`

	Remote Remote `yaml:"remote"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// LocalQueue configures the durable fallback queue.
type LocalQueue struct {
	// Path is the filesystem path to the SQLite queue file.
	Path string `yaml:"path" env:"LOCAL_QUEUE_PATH" env-required:"true"`
}

// Remote configures the remote-write collaborator.
type Remote struct {
	// Driver selects the writer: "http" or "postgres".
	Driver string `yaml:"driver" env:"REMOTE_DRIVER" env-default:"http"`

	// BaseURL and APIKey are used by the http driver.
	BaseURL string `yaml:"base_url" env:"REMOTE_BASE_URL"`
	APIKey  string `yaml:"api_key"  env:"REMOTE_API_KEY"`

	// DSN is used by the postgres driver.
	DSN string `yaml:"dsn" env:"REMOTE_DSN"`

	// Timeout bounds the single remote write attempt per submission.
	Timeout time.Duration `yaml:"timeout" env:"REMOTE_TIMEOUT" env-default:"10s"`
}

// Validate checks the driver-specific fields cleanenv cannot express.
func (c *Config) Validate() error {
	switch c.Remote.Driver {
	case DriverHTTP:
		if c.Remote.BaseURL == "" {
			return errors.New("remote.base_url is required for the http driver")
		}
	case DriverPostgres:
		if c.Remote.DSN == "" {
			return errors.New("remote.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown remote.driver %q", c.Remote.Driver)
	}
	if c.Remote.Timeout <= 0 {
		return errors.New("remote.timeout must be positive")
	}
	return nil
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file, applies env overrides and
	// defaults, and enforces env-required.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
// If this function returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}
	return cfg
}
