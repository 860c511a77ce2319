package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/gosecret/internal/pkg/goerror"
	"github.com/shandysiswandi/gosecret/internal/pkg/instrument"
	"github.com/shandysiswandi/gosecret/internal/pkg/stacktrace"
)

// Run executes the command line in args and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) (code int) {
	ctx = instrument.SetCorrelationID(ctx, a.uuid.Generate())

	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			if frames := stacktrace.InternalFrames(stack); len(frames) > 0 {
				slog.ErrorContext(ctx, "panic while running command", "because", rvr, "stack", frames)
			} else {
				slog.ErrorContext(ctx, "panic while running command", "because", rvr, "stack", string(stack))
			}
			fmt.Fprintln(a.stderr, "Error: internal error")
			code = goerror.ExitInternal
		}
	}()

	a.root.SetArgs(args)
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return goerror.ExitOK
	}

	// Errors raised before a command runs come from cobra's flag and
	// subcommand parsing. Commands print their own.
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		slog.DebugContext(ctx, "command line rejected", "error", err)
		return goerror.ExitInvalidInput
	}

	if gerr.Type() == goerror.TypeServer {
		slog.ErrorContext(ctx, "command failed", "error", gerr.String())
	}

	return gerr.ExitCode()
}

// Stop closes resources in order. Errors are logged, not returned.
func (a *App) Stop(ctx context.Context) {
	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}
