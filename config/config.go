// Package config assembles the runtime configuration: defaults, then an optional TOML file,
// then DONUT_* environment overrides. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/torus"
)

// ErrUnknownKey is returned when a config file sets keys no field accepts
var ErrUnknownKey = errors.New("unknown config key")

// Config is the complete program configuration
type Config struct {
	Torus   torus.Config `toml:"torus"`
	Display Display      `toml:"display"`
	Audio   Audio        `toml:"audio"`
}

// Display configures the output backend and frame pacing
type Display struct {
	Backend string `toml:"backend"`
	FPS     int    `toml:"fps"`
	// Frames stops the loop after this many frames, 0 runs until quit
	Frames int `toml:"frames"`
}

// Audio configures the revolution chime
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Torus: torus.DefaultConfig(),
		Display: Display{
			Backend: parameter.DefaultBackend,
			FPS:     parameter.DefaultFPS,
		},
		Audio: Audio{
			Enabled: false,
			Volume:  parameter.DefaultVolume,
		},
	}
}

// Load returns defaults overlaid with the file at path (skipped when empty), the process environment,
// then each override in order; the result is validated after the last override
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	ApplyEnv(&cfg, os.Getenv)
	for _, apply := range overrides {
		apply(&cfg)
	}
	return cfg, cfg.Validate()
}

// LoadFile decodes the TOML file at path over cfg; keys absent from the file keep their current values
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return checkUndecoded(path, md)
}

// Decode is LoadFile for in-memory TOML
func Decode(data string, cfg *Config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return checkUndecoded("<input>", md)
}

func checkUndecoded(source string, md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("config %s: %w: %s", source, ErrUnknownKey, strings.Join(keys, ", "))
}

// ApplyEnv overrides cfg from DONUT_* variables read through getenv
// Unparseable values are logged and ignored
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("DONUT_BACKEND"); v != "" {
		cfg.Display.Backend = strings.ToLower(v)
	}

	if v := getenv("DONUT_FPS"); v != "" {
		if fps, err := strconv.Atoi(v); err == nil {
			cfg.Display.FPS = fps
		} else {
			log.Printf("Ignoring DONUT_FPS=%q: %v", v, err)
		}
	}

	if v := getenv("DONUT_SOUND"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = on
		} else {
			log.Printf("Ignoring DONUT_SOUND=%q: %v", v, err)
		}
	}

	// Volume 0-100 converted to 0.0-1.0
	if v := getenv("DONUT_VOLUME"); v != "" {
		if vol, err := strconv.Atoi(v); err == nil {
			cfg.Audio.Volume = min(max(float64(vol)/100.0, 0), 1)
		} else {
			log.Printf("Ignoring DONUT_VOLUME=%q: %v", v, err)
		}
	}
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Torus.Validate(); err != nil {
		return err
	}

	switch c.Display.Backend {
	case parameter.BackendANSI, parameter.BackendTcell, parameter.BackendPlain:
	default:
		return fmt.Errorf("unknown display backend %q (want %s, %s or %s)",
			c.Display.Backend, parameter.BackendANSI, parameter.BackendTcell, parameter.BackendPlain)
	}
	if c.Display.FPS < parameter.MinFPS || c.Display.FPS > parameter.MaxFPS {
		return fmt.Errorf("fps %d outside [%d, %d]", c.Display.FPS, parameter.MinFPS, parameter.MaxFPS)
	}
	if c.Display.Frames < 0 {
		return fmt.Errorf("frame limit %d is negative", c.Display.Frames)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("volume %g outside [0, 1]", c.Audio.Volume)
	}
	return nil
}

// Save writes cfg as TOML
func Save(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
