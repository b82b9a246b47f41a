package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/slicedrop/internal/config"
	"github.com/vovakirdan/slicedrop/internal/core"
	"github.com/vovakirdan/slicedrop/internal/games/slices"
	"github.com/vovakirdan/slicedrop/internal/storage"
)

// newLogger creates a logger honoring --verbose.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// interactiveLogger returns the logger for full-screen commands. Output
// would corrupt the terminal, so it goes to --log or nowhere.
func interactiveLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	//nolint:errcheck // Best-effort close on exit
	return newLogger(f, "slicedrop"), func() { f.Close() }, nil
}

// loadConfig reads the puzzle configuration and applies --difficulty.
func loadConfig() (config.SlicesConfig, error) {
	cfg, err := config.LoadSlices(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplySlicesPreset(&cfg, preset)
	}
	return cfg, nil
}

// configureGames installs the configuration and logger for new games.
func configureGames(logger *log.Logger) (config.SlicesConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}
	slices.Configure(cfg, logger)
	return cfg, nil
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database, or returns nil after a warning. Games still
// work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}
