package usecase

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/shandysiswandi/gosecret/internal/credential/entity"
	"github.com/shandysiswandi/gosecret/internal/pkg/goerror"
	"github.com/shandysiswandi/gosecret/internal/pkg/hash"
	"github.com/shandysiswandi/gosecret/internal/pkg/instrument"
	"github.com/shandysiswandi/gosecret/internal/pkg/secret"
	"github.com/shandysiswandi/gosecret/internal/pkg/validator"
)

type readerInstrumentation struct {
	mp *sdkmetric.MeterProvider
}

func (r *readerInstrumentation) Tracer(name string) trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer(name)
}

func (r *readerInstrumentation) Meter(name string) metric.Meter {
	return r.mp.Meter(name)
}

func (r *readerInstrumentation) Shutdown(ctx context.Context) error {
	return r.mp.Shutdown(ctx)
}

func newUsecase(t *testing.T, ins instrument.Instrumentation) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	uc, err := New(Dependency{
		Validator:  v,
		Hasher:     hash.NewHMACSHA256("test"),
		Instrument: ins,
	})
	require.NoError(t, err)
	return uc
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				outcome, _ := dp.Attributes.Value("outcome")
				out[outcome.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestEnrollAndVerify(t *testing.T) {
	tests := []struct {
		name      string
		in        EnrollInput
		candidate string
		wantErr   string
		wantCode  goerror.Code
	}{
		{
			name:      "default policy fingerprint match",
			in:        EnrollInput{Password: "aaaaaaaa", Policy: secret.PolicyDefault, Mode: entity.ModeFingerprint},
			candidate: "aaaaaaaa",
		},
		{
			name:      "noop policy short password",
			in:        EnrollInput{Password: "aa", Policy: secret.PolicyNoOp, Mode: entity.ModeFingerprint},
			candidate: "aa",
		},
		{
			name:      "noop policy mismatch",
			in:        EnrollInput{Password: "ThisIsAPassword", Policy: secret.PolicyNoOp, Mode: entity.ModeFingerprint},
			candidate: "ThisIsAPassword1",
			wantErr:   "ThisIsAPassword1 does not match the password",
			wantCode:  goerror.CodeUnauthorized,
		},
		{
			name:      "sealed strict match",
			in:        EnrollInput{Password: "ThisIsAPassword", Policy: secret.PolicyStrict, Mode: entity.ModeSealed},
			candidate: "ThisIsAPassword",
		},
		{
			name:      "sealed default mismatch",
			in:        EnrollInput{Password: "ThisIsAPassword", Policy: secret.PolicyDefault, Mode: entity.ModeSealed},
			candidate: "nope",
			wantErr:   "nope does not match the password",
			wantCode:  goerror.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUsecase(t, instrument.NewNoop())

			cred, err := uc.Enroll(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.in.Policy, cred.Policy)
			assert.Equal(t, tt.in.Mode, cred.Mode)
			assert.NotContains(t, cred.String(), tt.in.Password)

			err = uc.Verify(context.Background(), VerifyInput{Credential: cred, Candidate: tt.candidate})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.EqualError(t, err, tt.wantErr)
			var gerr *goerror.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.wantCode, gerr.Code())
			assert.ErrorIs(t, err, secret.ErrPasswordMismatch)
			assert.Equal(t, goerror.ExitMismatch, goerror.ExitCode(err))
		})
	}
}

func TestEnrollRejected(t *testing.T) {
	uc := newUsecase(t, instrument.NewNoop())

	for _, raw := range []string{"aa", "pässwörd"} {
		_, err := uc.Enroll(context.Background(), EnrollInput{Password: raw, Policy: secret.PolicyDefault, Mode: entity.ModeFingerprint})
		require.EqualError(t, err, raw+" is not a valid password")

		var cerr *secret.CreationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, raw, cerr.Value)

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.TypeValidation, gerr.Type())
		assert.Equal(t, goerror.ExitInvalidInput, goerror.ExitCode(err))
	}
}

func TestEnrollInvalidInput(t *testing.T) {
	uc := newUsecase(t, instrument.NewNoop())

	_, err := uc.Enroll(context.Background(), EnrollInput{Password: "aaaaaaaa", Policy: "lenient", Mode: "plain"})
	require.Error(t, err)

	var verr validator.V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Values(), "policy")
	assert.Contains(t, verr.Values(), "mode")
	assert.Equal(t, goerror.ExitInvalidInput, goerror.ExitCode(err))
}

func oneOf(t *testing.T, field string) []string {
	t.Helper()

	f, ok := reflect.TypeOf(EnrollInput{}).FieldByName(field)
	require.True(t, ok)
	_, list, ok := strings.Cut(f.Tag.Get("validate"), "oneof=")
	require.True(t, ok)

	names := strings.Fields(list)
	sort.Strings(names)
	return names
}

func TestEnrollInputRulesCoverRegistries(t *testing.T) {
	assert.Equal(t, secret.PolicyNames(), oneOf(t, "Policy"))

	modes := make([]string, 0, len(entity.Modes()))
	for _, m := range entity.Modes() {
		modes = append(modes, string(m))
	}
	sort.Strings(modes)
	assert.Equal(t, modes, oneOf(t, "Mode"))

	uc := newUsecase(t, instrument.NewNoop())
	for _, policy := range secret.PolicyNames() {
		for _, mode := range entity.Modes() {
			_, err := uc.Enroll(context.Background(), EnrollInput{Password: "aaaaaaaa", Policy: policy, Mode: mode})
			assert.NoError(t, err, "%s/%s", policy, mode)
		}
	}
}

type failingHash struct{}

func (failingHash) Hash(string) ([]byte, error) { return nil, errors.New("entropy exhausted") }
func (failingHash) Verify(string, string) bool  { return false }

func TestEnrollHashFailure(t *testing.T) {
	uc := newUsecase(t, instrument.NewNoop())
	uc.hasher = failingHash{}

	_, err := uc.Enroll(context.Background(), EnrollInput{Password: "aaaaaaaa", Policy: secret.PolicyDefault, Mode: entity.ModeSealed})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInternal, gerr.Code())
	assert.Equal(t, goerror.ExitInternal, goerror.ExitCode(err))
}

func TestVerifyInvalidInput(t *testing.T) {
	uc := newUsecase(t, instrument.NewNoop())

	err := uc.Verify(context.Background(), VerifyInput{Candidate: "aa"})
	require.Error(t, err)
	assert.Equal(t, goerror.ExitInvalidInput, goerror.ExitCode(err))

	err = uc.Verify(context.Background(), VerifyInput{Credential: &entity.Credential{Policy: "noop"}, Candidate: "aa"})
	require.EqualError(t, err, "credential was not enrolled")
}

func TestCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	ins := &readerInstrumentation{mp: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))}
	uc := newUsecase(t, ins)
	ctx := context.Background()

	cred, err := uc.Enroll(ctx, EnrollInput{Password: "aaaaaaaa", Policy: secret.PolicyDefault, Mode: entity.ModeFingerprint})
	require.NoError(t, err)
	_, _ = uc.Enroll(ctx, EnrollInput{Password: "aa", Policy: secret.PolicyDefault, Mode: entity.ModeFingerprint})
	_, _ = uc.Enroll(ctx, EnrollInput{Password: "aa", Policy: "", Mode: entity.ModeFingerprint})

	require.NoError(t, uc.Verify(ctx, VerifyInput{Credential: cred, Candidate: "aaaaaaaa"}))
	require.Error(t, uc.Verify(ctx, VerifyInput{Credential: cred, Candidate: "bbbbbbbb"}))
	require.Error(t, uc.Verify(ctx, VerifyInput{Credential: cred, Candidate: "cccccccc"}))

	assert.Equal(t, map[string]int64{
		OutcomeCreated:  1,
		OutcomeRejected: 1,
		OutcomeInvalid:  1,
	}, collect(t, reader, "gosecret.credential.enroll"))

	assert.Equal(t, map[string]int64{
		OutcomeMatched:  1,
		OutcomeMismatch: 2,
	}, collect(t, reader, "gosecret.credential.verify"))

	require.NoError(t, ins.Shutdown(ctx))
}
