package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/gosecret/internal/credential/entity"
	"github.com/shandysiswandi/gosecret/internal/pkg/goerror"
	"github.com/shandysiswandi/gosecret/internal/pkg/secret"
)

// EnrollInput is deliberately free of rules on Password: the policy decides.
type EnrollInput struct {
	Password string      `json:"password"`
	Policy   string      `json:"policy" validate:"required,oneof=default noop strict"`
	Mode     entity.Mode `json:"mode" validate:"required,oneof=fingerprint sealed"`
}

func (s *Usecase) Enroll(ctx context.Context, in EnrollInput) (*entity.Credential, error) {
	ctx, span := s.startSpan(ctx, "Enroll")
	defer span.End()

	span.SetAttributes(
		attribute.String("policy", in.Policy),
		attribute.String("mode", string(in.Mode)),
	)

	if err := s.validator.Validate(in); err != nil {
		s.record(ctx, s.enrollCounter, OutcomeInvalid)
		return nil, goerror.NewInvalidInput(err)
	}

	var (
		matcher secret.Matcher
		err     error
	)
	switch in.Mode {
	case entity.ModeSealed:
		matcher, err = secret.NewSealedMatcher(in.Policy, s.hasher, in.Password)
	default:
		matcher, err = secret.NewMatcher(in.Policy, in.Password)
	}

	if errors.Is(err, secret.ErrInvalidPassword) {
		slog.WarnContext(ctx, "password rejected by policy", "policy", in.Policy, "error", err)
		span.SetStatus(codes.Error, "rejected by policy")
		s.record(ctx, s.enrollCounter, OutcomeRejected)
		return nil, goerror.NewInvalidInput(err)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to create secret", "policy", in.Policy, "mode", in.Mode, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "create secret")
		s.record(ctx, s.enrollCounter, OutcomeError)
		return nil, goerror.NewServer(err)
	}

	s.record(ctx, s.enrollCounter, OutcomeCreated)
	slog.DebugContext(ctx, "password enrolled", "policy", in.Policy, "mode", in.Mode)

	return &entity.Credential{
		Policy:  in.Policy,
		Mode:    in.Mode,
		Matcher: matcher,
	}, nil
}
