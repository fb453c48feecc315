package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirEnv overrides the launcher config directory.
const DirEnv = "LAUNCHER_HOME"

// FileName is the config file looked up in the config directory.
const FileName = "config.json"

const (
	defaultPathStore   = "paths.db"
	defaultTargetStore = "targets.db"
	defaultLogLevel    = "info"
)

// Config is the launcher configuration. The file is JSON in practice, but any
// YAML is accepted since JSON is a subset of it.
type Config struct {
	// DataDir holds the store files. Relative store names resolve against it,
	// and a relative DataDir resolves against the config file's directory.
	DataDir string `yaml:"data_dir" validate:"required"`
	// RomDirs are the directories the scanner walks.
	RomDirs []string `yaml:"rom_dirs" validate:"dive,required"`
	// PathStore is the path-signature store file.
	PathStore string `yaml:"path_store" validate:"required"`
	// TargetStore is the launch-target store file.
	TargetStore string `yaml:"target_store" validate:"required,nefield=PathStore"`
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	// MaxStoreBytes caps how much a single store load allocates; 0 keeps the
	// store default.
	MaxStoreBytes int64 `yaml:"max_store_bytes" validate:"gte=0"`
}

// DefaultDir resolves the config directory: $LAUNCHER_HOME, then
// $XDG_CONFIG_HOME/launcher, then ~/.config/launcher.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "launcher"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(home, ".config", "launcher"), nil
}

// Default returns a config keeping its stores in dir.
func Default(dir string) *Config {
	return &Config{
		DataDir:     dir,
		PathStore:   defaultPathStore,
		TargetStore: defaultTargetStore,
		LogLevel:    defaultLogLevel,
	}
}

// Load reads and validates the config file at path. Keys missing from the
// file keep their defaults, with DataDir defaulting to the file's directory.
// A relative DataDir is taken relative to the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dir, err := configDir(path)
	if err != nil {
		return nil, err
	}
	cfg := Default(dir)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.expand()
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(dir, cfg.DataDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults for the file's
// directory when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		dir, derr := configDir(path)
		if derr != nil {
			return nil, derr
		}
		return Default(dir), nil
	}
	return cfg, err
}

// configDir is the absolute directory holding the config file at path.
func configDir(path string) (string, error) {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory of %s: %w", path, err)
	}
	return dir, nil
}

// Resolve loads the config from path, or from DefaultDir when path is empty.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return LoadOrDefault(filepath.Join(dir, FileName))
}

func (c *Config) expand() {
	c.DataDir = os.ExpandEnv(c.DataDir)
	for i, dir := range c.RomDirs {
		c.RomDirs[i] = os.ExpandEnv(dir)
	}
}

// PathStorePath is the fully resolved path-signature store file.
func (c *Config) PathStorePath() string {
	return c.resolve(c.PathStore)
}

// TargetStorePath is the fully resolved launch-target store file.
func (c *Config) TargetStorePath() string {
	return c.resolve(c.TargetStore)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
