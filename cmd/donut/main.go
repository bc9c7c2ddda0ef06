package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"golang.org/x/term"

	"github.com/lixenwraith/donut/audio"
	"github.com/lixenwraith/donut/config"
	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/render"
	"github.com/lixenwraith/donut/snapshot"
	"github.com/lixenwraith/donut/terminal"
	"github.com/lixenwraith/donut/torus"
)

// options holds the command-line flags
type options struct {
	configPath    string
	backend       string
	fps           int
	frames        int
	sound         bool
	debug         bool
	snapshotPath  string
	snapshotFrame int
	dumpConfig    bool
}

func newOptions(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "TOML config file")
	fs.StringVar(&o.backend, "backend", parameter.DefaultBackend, "Output backend: ansi, tcell, plain")
	fs.IntVar(&o.fps, "fps", parameter.DefaultFPS, "Target frames per second")
	fs.IntVar(&o.frames, "frames", 0, "Stop after N frames (0 runs until quit)")
	fs.BoolVar(&o.sound, "sound", false, "Chime on every full turn")
	fs.BoolVar(&o.debug, "debug", false, "Write debug log to "+logDir+"/"+logFileName)
	fs.StringVar(&o.snapshotPath, "snapshot", "", "Render one frame to this file (.png or text) and exit")
	fs.IntVar(&o.snapshotFrame, "snapshot-frame", 0, "Frame number captured by -snapshot")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "Print the effective config as TOML and exit")
	return o
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the render loop crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDONUT CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts := newOptions(flag.CommandLine)
	flag.Parse()

	logFile := setupLogging(opts.debug)
	err := run(flag.CommandLine, opts)
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "donut: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *flag.FlagSet, opts *options) error {
	cfg, err := loadConfig(fs, opts)
	if err != nil {
		return err
	}

	if opts.dumpConfig {
		return config.Save(os.Stdout, cfg)
	}

	r, err := torus.New(cfg.Torus)
	if err != nil {
		return err
	}
	w, h := r.Size()
	log.Printf("renderer: %dx%d, %d samples per frame", w, h, r.Samples())

	if opts.snapshotPath != "" {
		f, err := frameAt(r, opts.snapshotFrame)
		if err != nil {
			return err
		}
		log.Printf("snapshot: frame %d to %s", opts.snapshotFrame, opts.snapshotPath)
		return snapshot.Save(opts.snapshotPath, f)
	}

	return play(r, cfg)
}

// loadConfig layers defaults, config file, environment and explicitly set flags
func loadConfig(fs *flag.FlagSet, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath, func(cfg *config.Config) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "backend":
				cfg.Display.Backend = opts.backend
			case "fps":
				cfg.Display.FPS = opts.fps
			case "frames":
				cfg.Display.Frames = opts.frames
			case "sound":
				cfg.Audio.Enabled = opts.sound
			}
		})
	})
	if err != nil {
		return cfg, err
	}
	log.Printf("config: backend=%s fps=%d frames=%d sound=%v", cfg.Display.Backend, cfg.Display.FPS, cfg.Display.Frames, cfg.Audio.Enabled)
	return cfg, nil
}

// frameAt renders the frame displayed n frames after start
func frameAt(r *torus.Renderer, n int) (*torus.Frame, error) {
	if n < 0 {
		return nil, fmt.Errorf("snapshot frame %d is negative", n)
	}
	da, db := r.Increments()
	o := torus.Identity()
	for i := 0; i < n; i++ {
		o = o.Advance(da, db)
	}
	f, _ := r.RenderFrame(o)
	return f, nil
}

// openSink returns the output for backend; screen is nil for non-interactive sinks
func openSink(backend string, out io.Writer) (render.Sink, render.Screen, error) {
	if backend == parameter.BackendANSI || backend == parameter.BackendTcell {
		if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			log.Printf("output is not a terminal, using %s backend", parameter.BackendPlain)
			backend = parameter.BackendPlain
		}
	}

	switch backend {
	case parameter.BackendANSI:
		s, err := render.NewANSIScreen()
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case parameter.BackendTcell:
		s, err := render.NewTcellScreen()
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case parameter.BackendPlain:
		return render.NewWriterSink(out), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown display backend %q", backend)
	}
}

func play(r *torus.Renderer, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, screen, err := openSink(cfg.Display.Backend, os.Stdout)
	if err != nil {
		return err
	}
	log.Printf("backend: %s", cfg.Display.Backend)

	loop := render.NewLoop(r, sink, render.LoopConfig{
		FPS:    cfg.Display.FPS,
		Frames: uint64(cfg.Display.Frames),
		Start:  torus.Identity(),
	})

	if screen != nil {
		// Normal exit terminal cleanup
		defer screen.Close()
		loop.SetActions(screen.Actions())
	}

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume)
		if err := player.Start(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer player.Stop()
			loop.AddObserver(player)
		}
	}

	return loop.Run(ctx)
}
