package server

import (
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/holoscene/holoscene/internal/core/zones"
)

// Config holds pose-stream server configuration.
type Config struct {
	// Network settings
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Session settings
	MaxSessions int `yaml:"max_sessions"`

	// Layout settings forwarded to each session's engine
	TargetSize float64         `yaml:"target_size"`
	FloorY     float64         `yaml:"floor_y"`
	Zones      zones.Overrides `yaml:"zones"`
}

// DefaultConfig returns a config suitable for local development.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxSessions:  64,
		TargetSize:   1.0,
	}
}

func (c Config) validate() error {
	if c.Port <= 0 || c.MaxSessions <= 0 || c.TargetSize <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// LoadConfig reads a YAML config, merged over the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile loads the server config from disk.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return LoadConfig(f)
}
