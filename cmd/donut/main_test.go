package main

import (
	"bytes"
	"flag"
	"path/filepath"
	"slices"
	"testing"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/render"
	"github.com/lixenwraith/donut/torus"
)

func parseArgs(t *testing.T, args ...string) (*flag.FlagSet, *options) {
	t.Helper()
	fs := flag.NewFlagSet("donut", flag.ContinueOnError)
	opts := newOptions(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Failed to parse %v: %v", args, err)
	}
	return fs, opts
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("DONUT_FPS", "")
	t.Setenv("DONUT_BACKEND", "")
	t.Setenv("DONUT_SOUND", "")
	t.Setenv("DONUT_VOLUME", "")

	tests := []struct {
		name    string
		args    []string
		backend string
		fps     int
		frames  int
		sound   bool
		wantErr bool
	}{
		{"defaults", nil, parameter.DefaultBackend, parameter.DefaultFPS, 0, false, false},
		{"all set", []string{"-backend", "plain", "-fps", "60", "-frames", "10", "-sound"}, "plain", 60, 10, true, false},
		{"bad backend", []string{"-backend", "gl"}, "", 0, 0, false, true},
		{"bad fps", []string{"-fps", "0"}, "", 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, opts := parseArgs(t, tt.args...)
			cfg, err := loadConfig(fs, opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig failed: %v", err)
			}
			if cfg.Display.Backend != tt.backend || cfg.Display.FPS != tt.fps ||
				cfg.Display.Frames != tt.frames || cfg.Audio.Enabled != tt.sound {
				t.Errorf("Unexpected config %+v", cfg)
			}
		})
	}
}

// TestLoadConfigFlagsOverrideEnv verifies flags win over environment, unset flags do not
func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DONUT_FPS", "15")
	t.Setenv("DONUT_BACKEND", "tcell")

	fs, opts := parseArgs(t, "-fps", "45")
	cfg, err := loadConfig(fs, opts)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Display.FPS != 45 {
		t.Errorf("Expected flag fps 45, got %d", cfg.Display.FPS)
	}
	if cfg.Display.Backend != "tcell" {
		t.Errorf("Expected env backend tcell, got %s", cfg.Display.Backend)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	fs, opts := parseArgs(t, "-config", filepath.Join(t.TempDir(), "none.toml"))
	if _, err := loadConfig(fs, opts); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestFrameAt(t *testing.T) {
	r, err := torus.New(torus.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	first, err := frameAt(r, 0)
	if err != nil {
		t.Fatalf("frameAt failed: %v", err)
	}
	want, o := r.RenderFrame(torus.Identity())
	if !slices.Equal(first.Glyphs, want.Glyphs) {
		t.Error("Frame 0 differs from identity render")
	}

	third, err := frameAt(r, 2)
	if err != nil {
		t.Fatalf("frameAt failed: %v", err)
	}
	_, o = r.RenderFrame(o)
	want, _ = r.RenderFrame(o)
	if !slices.Equal(third.Glyphs, want.Glyphs) {
		t.Error("Frame 2 differs from threaded render")
	}

	if _, err := frameAt(r, -1); err == nil {
		t.Error("Expected error for negative frame")
	}
}

func TestOpenSinkFallsBackToPlain(t *testing.T) {
	var buf bytes.Buffer
	for _, backend := range []string{parameter.BackendANSI, parameter.BackendTcell, parameter.BackendPlain} {
		sink, screen, err := openSink(backend, &buf)
		if err != nil {
			t.Fatalf("%s: openSink failed: %v", backend, err)
		}
		if screen != nil {
			t.Errorf("%s: expected no interactive screen for a non-terminal", backend)
		}
		if _, ok := sink.(*render.WriterSink); !ok {
			t.Errorf("%s: expected WriterSink, got %T", backend, sink)
		}
	}

	if _, _, err := openSink("gl", &buf); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestRunSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.txt")
	fs, opts := parseArgs(t, "-snapshot", path)
	if err := run(fs, opts); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	fs, opts = parseArgs(t, "-snapshot", path, "-snapshot-frame", "-3")
	if err := run(fs, opts); err == nil {
		t.Error("Expected error for negative snapshot frame")
	}
}
