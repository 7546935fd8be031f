// Package config loads varigen settings from a YAML file and the
// environment.
//
// Precedence, highest first: command-line flags (applied by the CLI),
// environment variables, the config file, built-in defaults.
//
//	# ~/.config/varigen/config.yaml
//	db: ~/varigen/state.db
//	key: variant-generator-data
//	format: text
//	verbose: false
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Resolve.
const (
	EnvConfig = "VARIGEN_CONFIG"
	EnvDB     = "VARIGEN_DB"
)

const (
	appDir         = "varigen"
	configFileName = "config.yaml"
	dbFileName     = "state.db"
	defaultKey     = "variant-generator-data"
)

// Config holds the resolved settings.
type Config struct {
	// DB is the SQLite database path.
	DB string `yaml:"db"`

	// Key names the store slot holding the state.
	Key string `yaml:"key"`

	// Format is the default output format: text or json.
	Format string `yaml:"format"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DB:     filepath.Join(baseDir(), dbFileName),
		Key:    defaultKey,
		Format: "text",
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return filepath.Join(baseDir(), configFileName)
}

func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return appDir
	}
	return filepath.Join(dir, appDir)
}

// Load reads a config file. Unknown keys are rejected. Settings missing
// from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes config YAML. path is only used in error messages.
func Parse(data []byte, path string) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.DB = expandHome(cfg.DB)
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("key must not be empty")
	}
	if strings.TrimSpace(c.DB) == "" {
		return errors.New("db must not be empty")
	}
	return nil
}

// Resolve loads the config file named by path, or by $VARIGEN_CONFIG, or
// the default location, then applies environment overrides.
// A missing file is only an error when it was named explicitly.
func Resolve(path string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	explicit := true
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultPath()
		explicit = false
	}

	cfg, err := Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		cfg = Default()
	}

	if db := getenv(EnvDB); db != "" {
		cfg.DB = expandHome(db)
	}
	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
