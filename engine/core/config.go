package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	Hidden     bool       `toml:"hidden"` // create the context without showing a window
	ClearColor [4]float32 `toml:"clear_color"`

	// StackFrames is the number of override frames preallocated per variable.
	StackFrames int `toml:"stack_frames"`
	// DiagnosticColor enables syntax highlighting in shader diagnostics.
	DiagnosticColor bool `toml:"diagnostic_color"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:       "shaderstate sandbox",
		Width:       1280,
		Height:      720,
		VSync:       true,
		ClearColor:  [4]float32{0.08, 0.10, 0.12, 1},
		StackFrames: 4,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no window or core can be built from.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.StackFrames < 0 {
		return fmt.Errorf("stack_frames must not be negative, got %d", c.StackFrames)
	}
	return nil
}
