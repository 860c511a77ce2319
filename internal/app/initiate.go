package app

import (
	"context"
	_ "embed"
	"log/slog"
	"os"

	"github.com/shandysiswandi/gosecret/internal/pkg/config"
	"github.com/shandysiswandi/gosecret/internal/pkg/hash"
	"github.com/shandysiswandi/gosecret/internal/pkg/instrument"
	"github.com/shandysiswandi/gosecret/internal/pkg/uid"
	"github.com/shandysiswandi/gosecret/internal/pkg/validator"
)

//go:embed config.yaml
var defaultConfig []byte

func (a *App) initConfig() {
	if a.config != nil {
		return
	}

	var (
		cfg config.Config
		err error
	)
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		cfg, err = config.NewViper(path)
	} else {
		cfg, err = config.NewViperFromBytes("yaml", defaultConfig)
	}
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
		LogOutput:        a.stderr,
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.uuid = uid.NewUUID()

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator

	algorithm := a.config.GetString("hash.algorithm")
	hasher, err := hash.NewFromName(algorithm, hash.Options{
		BcryptCost:        a.config.GetInt("hash.bcrypt.cost"),
		BcryptPepper:      a.config.GetString("hash.bcrypt.pepper"),
		Argon2idPepper:    a.config.GetString("hash.argon2id.pepper"),
		Argon2idMemoryKiB: a.config.GetUint32("hash.argon2id.memory_kib"),
		Argon2idTime:      a.config.GetUint32("hash.argon2id.iterations"),
		HMACSecret:        a.config.GetString("hash.hmac.secret"),
	})
	if err != nil {
		slog.Error("failed to init hasher", "algorithm", algorithm, "error", err)
		os.Exit(1)
	}
	a.hasher = hasher
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
