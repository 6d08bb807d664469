package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/gridjobs/internal/ctxlog"
	"github.com/vk/gridjobs/internal/model"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	sweep  *model.Sweep
}

// New is the constructor for the main application. It builds an isolated
// logger, loads the sweep definition, and returns a fully initialized App.
// The listing and generated output go to outW; logs go to logW.
func New(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	sweep, err := model.Load(ctx, cfg.SweepPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sweep definition: %w", err)
	}
	logger.Debug("Sweep definition loaded.", "experiments", len(sweep.Experiments))

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		sweep:  sweep,
	}, nil
}

// Sweep returns the loaded sweep model. This is primarily for testing.
func (a *App) Sweep() *model.Sweep {
	return a.sweep
}
