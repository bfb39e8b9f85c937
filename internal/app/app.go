package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/tuneit/internal/tune"
)

// Loader is the interface for reading and validating a tuning input file.
type Loader interface {
	// Load parses and validates the file at path. The diagnostics carry
	// warnings and, on failure, the error itself.
	Load(ctx context.Context, path string) (*tune.Spec, hcl.Diagnostics, error)

	// Files returns the sources read so far for snippet rendering.
	Files() map[string]*hcl.File
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader Loader

	specs []*tune.Spec
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger writing to outW.
func NewApp(outW io.Writer, cfg *Config, loader Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Specs returns the inputs validated by the last Run. This is primarily for testing.
func (a *App) Specs() []*tune.Spec {
	return a.specs
}
