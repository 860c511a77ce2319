package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/gosecret/internal/credential/entity"
	"github.com/shandysiswandi/gosecret/internal/pkg/goerror"
	"github.com/shandysiswandi/gosecret/internal/pkg/secret"
)

type VerifyInput struct {
	Credential *entity.Credential `json:"credential" validate:"required"`
	Candidate  string             `json:"candidate"`
}

func (s *Usecase) Verify(ctx context.Context, in VerifyInput) error {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		s.record(ctx, s.verifyCounter, OutcomeInvalid)
		return goerror.NewInvalidInput(err)
	}

	if in.Credential.Matcher == nil {
		s.record(ctx, s.verifyCounter, OutcomeInvalid)
		return goerror.NewInvalidFormat("credential was not enrolled")
	}

	err := in.Credential.Matcher.Matches(in.Candidate)
	if errors.Is(err, secret.ErrPasswordMismatch) {
		slog.WarnContext(ctx, "password mismatch", "policy", in.Credential.Policy, "mode", in.Credential.Mode, "error", err)
		span.SetStatus(codes.Error, "mismatch")
		s.record(ctx, s.verifyCounter, OutcomeMismatch)
		return goerror.NewUnauthorized(err)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify password", "error", err)
		span.RecordError(err)
		s.record(ctx, s.verifyCounter, OutcomeError)
		return goerror.NewServer(err)
	}

	s.record(ctx, s.verifyCounter, OutcomeMatched)
	return nil
}
