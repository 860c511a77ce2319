package credential

import (
	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gosecret/internal/credential/entity"
	"github.com/shandysiswandi/gosecret/internal/credential/inbound"
	"github.com/shandysiswandi/gosecret/internal/credential/usecase"
	"github.com/shandysiswandi/gosecret/internal/pkg/config"
	"github.com/shandysiswandi/gosecret/internal/pkg/hash"
	"github.com/shandysiswandi/gosecret/internal/pkg/instrument"
	"github.com/shandysiswandi/gosecret/internal/pkg/secret"
	"github.com/shandysiswandi/gosecret/internal/pkg/validator"
)

type Dependency struct {
	Root       *cobra.Command             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Hasher     hash.Hash                  `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc, err := usecase.New(usecase.Dependency{
		Validator:  dep.Validator,
		Hasher:     dep.Hasher,
		Instrument: dep.Instrument,
	})
	if err != nil {
		return err
	}

	defaults := inbound.Defaults{
		Policy: dep.Config.GetString("secret.policy"),
		Mode:   entity.Mode(dep.Config.GetString("secret.mode")),
	}
	if defaults.Policy == "" {
		defaults.Policy = secret.PolicyDefault
	}
	if defaults.Mode == "" {
		defaults.Mode = entity.ModeFingerprint
	}

	inbound.RegisterCLI(dep.Root, uc, defaults)

	return nil
}
