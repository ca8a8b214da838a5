// ABOUTME: Entry point for the acaudio player
// ABOUTME: Parses CLI flags, loads files into units and runs the TUI or a headless loop
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/aerials-audio/acaudio/internal/lifecycle"
	"github.com/aerials-audio/acaudio/internal/ui"
	"github.com/aerials-audio/acaudio/internal/version"
	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"github.com/aerials-audio/acaudio/pkg/audio/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	backend     = flag.String("backend", output.BackendOto, "Output backend (oto, malgo, portaudio, null)")
	sampleRate  = flag.Int("rate", 48000, "Device sample rate")
	channels    = flag.Int("channels", 2, "Device channel count")
	logFile     = flag.String("log-file", "acaudio.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, play every file and stream logs instead")
	loop        = flag.Bool("loop", false, "Loop playback in headless mode")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] FILE...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	useTUI := !*noTUI

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	logger := newLogger(f, !useTUI, *debug)
	defer func() { _ = logger.Sync() }()

	if err := run(logger, useTUI, flag.Args()); err != nil {
		logger.Error("player failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes JSON to the log file and, in streaming mode, readable
// lines to stdout as well
func newLogger(f *os.File, console, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level),
	}
	if console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...)).With(zap.String("version", version.Version))
}

func run(logger *zap.Logger, useTUI bool, files []string) error {
	m, err := acaudio.New(acaudio.Config{
		Backend:    *backend,
		SampleRate: *sampleRate,
		Channels:   *channels,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close failed", zap.Error(err))
		}
		logger.Info("player stopped")
	}()

	tracks, err := loadTracks(m, files)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if useTUI {
		prog := ui.Run(m, tracks)
		// The model must see lifecycle signals so it stops polling while inactive
		lifecycle.Watch(ctx, ui.NewSignalForwarder(prog), logger)
		go func() {
			<-ctx.Done()
			prog.Quit()
		}()
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("TUI failed: %w", err)
		}
		return nil
	}

	life := &activity{m: m}
	lifecycle.Watch(ctx, life, logger)
	return playHeadless(ctx, logger, m, life, tracks)
}

// loadTracks creates one resource and one unit per file
func loadTracks(m *acaudio.Manager, files []string) ([]ui.Track, error) {
	tracks := make([]ui.Track, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		res, err := m.CreateResource(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		u, _, err := m.CreateUnit(res)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		tracks = append(tracks, ui.Track{Name: filepath.Base(path), Path: path, Unit: u})
	}
	return tracks, nil
}

// activity forwards lifecycle signals and remembers whether the player is
// in the background
type activity struct {
	m        *acaudio.Manager
	inactive atomic.Bool
}

func (a *activity) Handle(sig acaudio.Signal) error {
	a.inactive.Store(sig == acaudio.SignalDeactivated)
	return a.m.Handle(sig)
}

// playHeadless starts every track and reports progress until they all finish
// or ctx is cancelled
func playHeadless(ctx context.Context, logger *zap.Logger, m *acaudio.Manager, life *activity, tracks []ui.Track) error {
	for _, t := range tracks {
		if _, err := m.PlayUnit(t.Unit, *loop); err != nil {
			return fmt.Errorf("%s: %w", t.Name, err)
		}
		logger.Info("playing", zap.String("file", t.Name), zap.Stringer("unit", t.Unit), zap.Bool("loop", *loop))
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			return nil
		case <-ticker.C:
			// Refreshing while inactive would drop the flags activate resumes from
			if life.inactive.Load() {
				continue
			}
			for _, t := range tracks {
				if _, err := m.CheckPlaying(t.Unit); err != nil {
					return err
				}
				info, err := m.Unit(t.Unit)
				if err != nil {
					return err
				}
				logger.Debug("position",
					zap.String("file", t.Name),
					zap.Int64("ms", info.TimeMs),
					zap.Int64("length_ms", info.LengthMs),
					zap.Bool("playing", info.Playing))
			}
			if m.Stats().PlayingUnits == 0 {
				logger.Info("playback finished")
				return nil
			}
		}
	}
}
