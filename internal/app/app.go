package app

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gosecret/internal/pkg/config"
	"github.com/shandysiswandi/gosecret/internal/pkg/hash"
	"github.com/shandysiswandi/gosecret/internal/pkg/instrument"
	"github.com/shandysiswandi/gosecret/internal/pkg/uid"
	"github.com/shandysiswandi/gosecret/internal/pkg/validator"
)

// App wires dependencies and runs one CLI invocation.
type App struct {
	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	hasher    hash.Hash
	uuid      uid.StringID

	// cli
	root   *cobra.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// Option customizes App construction.
type Option func(*App)

// WithConfig uses cfg instead of loading CONFIG_PATH or the embedded defaults.
func WithConfig(cfg config.Config) Option {
	return func(a *App) { a.config = cfg }
}

// WithIO replaces the process standard streams. Logs go to stderr.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdin = stdin
		a.stdout = stdout
		a.stderr = stderr
	}
}

// New initializes the application with default wiring and returns an App instance.
func New(opts ...Option) *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initModules()
	app.initClosers()

	return app
}
