// ABOUTME: Runs acaudio host scripts against a live manager
// ABOUTME: Uses the null device by default so scripts run without audio hardware
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aerials-audio/acaudio/internal/host"
	"github.com/aerials-audio/acaudio/internal/version"
	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"github.com/aerials-audio/acaudio/pkg/audio/output"
	"go.uber.org/zap"
	"rsc.io/script"
)

var (
	backend    = flag.String("backend", output.BackendNull, "Output backend (oto, malgo, portaudio, null)")
	sampleRate = flag.Int("rate", 48000, "Device sample rate")
	channels   = flag.Int("channels", 2, "Device channel count")
	workDir    = flag.String("dir", ".", "Script working directory")
	verbose    = flag.Bool("v", false, "Log manager activity to stderr")
	listCmds   = flag.Bool("list", false, "List available commands and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] SCRIPT\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*listCmds && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", version.Product, err)
		os.Exit(1)
	}
}

func run() error {
	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	cfg := acaudio.Config{
		Backend:    *backend,
		SampleRate: *sampleRate,
		Channels:   *channels,
		Logger:     logger,
	}

	// The null device doubles as the script clock for advance
	var clock host.Clock
	if cfg.Backend == output.BackendNull {
		dev := output.NewNull(cfg.SampleRate, cfg.Channels)
		cfg.Device = dev
		clock = dev
	}

	m, err := acaudio.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	h := host.New(m, clock)
	engine := h.Engine()

	if *listCmds {
		return engine.ListCmds(os.Stdout, false)
	}

	file := flag.Arg(0)
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir, err := filepath.Abs(*workDir)
	if err != nil {
		return err
	}
	state, err := script.NewState(ctx, dir, os.Environ())
	if err != nil {
		return err
	}

	err = engine.Execute(state, file, bufio.NewReader(f), os.Stdout)
	if closeErr := state.CloseAndWait(os.Stdout); err == nil {
		err = closeErr
	}
	return err
}
