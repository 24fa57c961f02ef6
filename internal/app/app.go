// Package app wires configuration, backends, and presentation into the
// fibmod application entry points.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/fibmod/internal/config"
	"github.com/agbru/fibmod/internal/fibmod"
	"github.com/agbru/fibmod/internal/server"
	"github.com/agbru/fibmod/internal/ui"
)

// Application represents the fibmod application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *fibmod.Registry
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom backend registry for the application.
func WithRegistry(r *fibmod.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = fibmod.NewRegistry()
	}

	programName := "fibmod"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	ui.InitTheme(a.Config.NoColor || a.Config.Quiet || a.Config.JSONOutput)

	if a.Config.ServerMode {
		return a.runServer()
	}

	return a.runCompute(ctx, out)
}

// runServer starts the HTTP API server and blocks until shutdown.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Registry, a.Config)
	return srv.Start()
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
