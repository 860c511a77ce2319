package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gosecret/internal/pkg/hash"
	"github.com/shandysiswandi/gosecret/internal/pkg/instrument"
	"github.com/shandysiswandi/gosecret/internal/pkg/validator"
)

const instrumentName = "credential.usecase"

// Outcomes recorded on the enroll and verify counters.
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeMatched  = "matched"
	OutcomeMismatch = "mismatch"
	OutcomeError    = "error"
)

type Usecase struct {
	validator validator.Validator
	hasher    hash.Hash
	ins       instrument.Instrumentation

	enrollCounter metric.Int64Counter
	verifyCounter metric.Int64Counter
}

type Dependency struct {
	Validator  validator.Validator
	Hasher     hash.Hash
	Instrument instrument.Instrumentation
}

func New(dep Dependency) (*Usecase, error) {
	meter := dep.Instrument.Meter(instrumentName)

	enrollCounter, err := meter.Int64Counter("gosecret.credential.enroll",
		metric.WithDescription("Password enrollments by outcome."),
	)
	if err != nil {
		return nil, err
	}

	verifyCounter, err := meter.Int64Counter("gosecret.credential.verify",
		metric.WithDescription("Password verifications by outcome."),
	)
	if err != nil {
		return nil, err
	}

	return &Usecase{
		validator:     dep.Validator,
		hasher:        dep.Hasher,
		ins:           dep.Instrument,
		enrollCounter: enrollCounter,
		verifyCounter: verifyCounter,
	}, nil
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer(instrumentName).Start(ctx, name)
}

func (s *Usecase) record(ctx context.Context, counter metric.Int64Counter, outcome string) {
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
