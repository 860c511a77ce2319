package app

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gosecret/internal/credential"
)

func (a *App) initModules() {
	a.root = &cobra.Command{
		Use:           "gosecret",
		Short:         "Validate passwords against a policy and check candidates",
		Version:       a.config.GetString("app.version"),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	if name := a.config.GetString("app.name"); name != "" {
		a.root.Use = name
	}
	a.root.SetIn(a.stdin)
	a.root.SetOut(a.stdout)
	a.root.SetErr(a.stderr)

	if err := credential.New(credential.Dependency{
		Root:       a.root,
		Config:     a.config,
		Validator:  a.validator,
		Hasher:     a.hasher,
		Instrument: a.ins,
	}); err != nil {
		slog.Error("failed to init module credential", "error", err)
		os.Exit(1)
	}
}
