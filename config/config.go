package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration. Flags override
// anything set here.
type Config struct {
	General GeneralConfig `toml:"general"`
	Run     RunConfig     `toml:"run"`
	Serve   ServeConfig   `toml:"serve"`
}

// GeneralConfig holds settings shared by every command.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
}

// RunConfig controls the interpreter driver.
type RunConfig struct {
	// OnError is "continue" (default) or "abort".
	OnError string `toml:"on_error"`

	// PrintState prints the final machine state after a run.
	PrintState bool `toml:"print_state"`
}

// ServeConfig holds the HTTP API settings.
type ServeConfig struct {
	Addr    string `toml:"addr"`
	DataDir string `toml:"data_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{LogLevel: "info"},
		Run:     RunConfig{OnError: "continue"},
		Serve:   ServeConfig{Addr: ":9091", DataDir: "./data"},
	}
}

// Load reads a TOML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %q does not exist", path)
		}
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("config file %q: unknown key %q", path, undec[0].String())
	}

	return cfg, nil
}
