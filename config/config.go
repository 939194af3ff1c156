// Package config loads the optional YAML file holding registry server
// defaults. Values from the file are applied only to flags the operator did
// not set on the command line or through the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for a file that parses but holds unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// FileConfig is the schema of the server config file. The service password
// is intentionally not part of it.
type FileConfig struct {
	ListenAddr   string    `yaml:"listen_addr"`
	MetricsAddr  string    `yaml:"metrics_addr"`
	BcryptCost   int       `yaml:"bcrypt_cost"`
	DrainSeconds *int64    `yaml:"drain_seconds"`
	Pprof        bool      `yaml:"pprof"`
	Log          LogConfig `yaml:"log"`
}

// LogConfig mirrors the --log-* flags.
type LogConfig struct {
	JSON    bool   `yaml:"json"`
	Debug   bool   `yaml:"debug"`
	UID     bool   `yaml:"uid"`
	Service string `yaml:"service"`
}

// Load reads and validates the config file at path. An empty file yields a
// zero FileConfig. Unknown keys are rejected.
func Load(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a config document from r.
func Parse(r io.Reader) (*FileConfig, error) {
	c := &FileConfig{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges. Zero values mean "use the default".
func (c *FileConfig) Validate() error {
	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("%w: bcrypt_cost %d outside [%d, %d]", ErrInvalidConfig, c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.DrainSeconds != nil && *c.DrainSeconds < 0 {
		return fmt.Errorf("%w: drain_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}
