package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dimgrid/internal/config"
	"github.com/specialistvlad/dimgrid/internal/ctxlog"
)

// sourceFiles is implemented by loaders that keep the parsed source around
// for rendering located diagnostics.
type sourceFiles interface {
	Files() map[string]*hcl.File
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. The report goes to
// outW; logs and diagnostics go to errW so the report stays machine-readable.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// files returns the loader's parsed sources, if it keeps any.
func (a *App) files() map[string]*hcl.File {
	if fs, ok := a.loader.(sourceFiles); ok {
		return fs.Files()
	}
	return nil
}
