package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/torus"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
	if cfg.Torus != torus.DefaultConfig() {
		t.Errorf("Expected torus defaults, got %+v", cfg.Torus)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled by default")
	}
}

// TestLoadFileOverlaysDefaults verifies keys absent from the file keep default values
func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "donut.toml")
	data := `
[torus]
camera_distance = 6.5
ramp = "0123456789AB"

[display]
backend = "tcell"
fps = 60
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg := Default()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Torus.CameraDistance != 6.5 {
		t.Errorf("Expected camera distance 6.5, got %g", cfg.Torus.CameraDistance)
	}
	if cfg.Torus.Ramp != "0123456789AB" {
		t.Errorf("Expected custom ramp, got %q", cfg.Torus.Ramp)
	}
	if cfg.Torus.Width != parameter.ScreenWidth || cfg.Torus.StepA != parameter.StepA {
		t.Errorf("Expected untouched keys to keep defaults, got %+v", cfg.Torus)
	}
	if cfg.Display.Backend != parameter.BackendTcell || cfg.Display.FPS != 60 {
		t.Errorf("Unexpected display section %+v", cfg.Display)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected loaded config to validate, got %v", err)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode("[torus]\nradius = 3\n", &cfg)
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	cfg := Default()
	if err := Decode("[torus\nwidth = ", &cfg); err == nil {
		t.Error("Expected syntax error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadOverridesApplyLast(t *testing.T) {
	t.Setenv("DONUT_BACKEND", "bogus")
	t.Setenv("DONUT_FPS", "12")

	if _, err := Load(""); err == nil {
		t.Fatal("Expected invalid environment backend to fail validation")
	}

	cfg, err := Load("",
		func(c *Config) { c.Display.Backend = parameter.BackendPlain },
		func(c *Config) { c.Display.FPS = c.Display.FPS * 2 },
	)
	if err != nil {
		t.Fatalf("Expected override to repair the environment backend, got %v", err)
	}
	if cfg.Display.Backend != parameter.BackendPlain {
		t.Errorf("Expected plain backend, got %q", cfg.Display.Backend)
	}
	// Second override sees the environment value and the first override's result
	if cfg.Display.FPS != 24 {
		t.Errorf("Expected fps 24, got %d", cfg.Display.FPS)
	}
}

func TestLoadOverrideValidated(t *testing.T) {
	_, err := Load("", func(c *Config) { c.Display.FPS = parameter.MaxFPS + 1 })
	if err == nil {
		t.Error("Expected out-of-range override to fail validation")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DONUT_BACKEND": "PLAIN",
		"DONUT_FPS":     "12",
		"DONUT_SOUND":   "true",
		"DONUT_VOLUME":  "150",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.Display.Backend != parameter.BackendPlain {
		t.Errorf("Expected plain backend, got %q", cfg.Display.Backend)
	}
	if cfg.Display.FPS != 12 {
		t.Errorf("Expected fps 12, got %d", cfg.Display.FPS)
	}
	if !cfg.Audio.Enabled {
		t.Error("Expected audio enabled")
	}
	if cfg.Audio.Volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %g", cfg.Audio.Volume)
	}
}

// TestApplyEnvIgnoresGarbage verifies unparseable values leave the config unchanged
func TestApplyEnvIgnoresGarbage(t *testing.T) {
	env := map[string]string{
		"DONUT_FPS":    "fast",
		"DONUT_SOUND":  "loud",
		"DONUT_VOLUME": "max",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad backend", func(c *Config) { c.Display.Backend = "x11" }},
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"too fast", func(c *Config) { c.Display.FPS = parameter.MaxFPS + 1 }},
		{"negative frames", func(c *Config) { c.Display.Frames = -1 }},
		{"volume above one", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"bad torus", func(c *Config) { c.Torus.Width = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

// TestSaveIsLoadable verifies the dumped config reads back as the same configuration
func TestSaveIsLoadable(t *testing.T) {
	cfg := Default()
	cfg.Torus.Ramp = "abcdefghijkl"
	cfg.Display.Frames = 7

	var buf bytes.Buffer
	if err := Save(&buf, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var back Config
	if err := Decode(buf.String(), &back); err != nil {
		t.Fatalf("Decode of saved config failed: %v\n%s", err, buf.String())
	}
	if back != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, back)
	}
}
