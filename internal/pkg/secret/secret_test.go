package secret

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func TestNewDefaultPolicy(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "exactly eight ascii bytes", raw: "aaaaaaaa"},
		{name: "long ascii", raw: "ThisIsAPassword"},
		{name: "ascii control characters are allowed", raw: "aaaa\taaaa"},
		{name: "too short", raw: "aa", reason: ReasonTooShort},
		{name: "empty", raw: "", reason: ReasonTooShort},
		{name: "seven bytes", raw: "aaaaaaa", reason: ReasonTooShort},
		{name: "non ascii long enough", raw: "pässwörd", reason: ReasonNonASCII},
		{name: "short and non ascii", raw: "ä", reason: ReasonTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pw, err := New[DefaultPolicy](tt.raw)
			if tt.reason == "" {
				require.NoError(t, err)
				assert.NoError(t, pw.Matches(tt.raw))
				return
			}

			var cerr *CreationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.raw, cerr.Value)
			assert.Equal(t, tt.reason, cerr.Reason)
			assert.Equal(t, tt.raw+" is not a valid password", err.Error())
			assert.ErrorIs(t, err, ErrInvalidPassword)
		})
	}
}

func TestNewDefaultPolicyProperty(t *testing.T) {
	property := func(s string) bool {
		_, err := New[DefaultPolicy](s)
		wantOK := len(s) >= DefaultMinLength && isASCII(s)
		if wantOK {
			return err == nil
		}
		var cerr *CreationError
		return errors.As(err, &cerr) && cerr.Value == s
	}
	require.NoError(t, quick.Check(property, nil))

	asciiProperty := func(b []byte) bool {
		s := strings.Repeat("x", DefaultMinLength)
		for _, c := range b {
			s += string(rune('!' + c%94))
		}
		_, err := New[DefaultPolicy](s)
		return err == nil
	}
	require.NoError(t, quick.Check(asciiProperty, nil))
}

func TestNewNoOpPolicyAcceptsEverything(t *testing.T) {
	property := func(s string) bool {
		sec, err := New[NoOpPolicy](s)
		return err == nil && sec.Matches(s) == nil
	}
	require.NoError(t, quick.Check(property, nil))

	for _, raw := range []string{"", "aa", "pässwörd", "\x00\xff"} {
		sec, err := New[NoOpPolicy](raw)
		require.NoError(t, err, raw)
		assert.NoError(t, sec.Matches(raw), raw)
	}
}

func TestNewStrictPolicy(t *testing.T) {
	_, err := New[StrictPolicy]("aaaaaaaa")
	require.NoError(t, err)

	_, err = New[StrictPolicy](strings.Repeat("a", 73))
	var cerr *CreationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ReasonRule, cerr.Reason)

	_, err = New[StrictPolicy]("aaaa\taaaa")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = New[StrictPolicy]("pässwörd")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestMatches(t *testing.T) {
	sec, err := New[NoOpPolicy]("ThisIsAPassword")
	require.NoError(t, err)

	require.NoError(t, sec.Matches("ThisIsAPassword"))

	err = sec.Matches("ThisIsAPassword1")
	var merr *MatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "ThisIsAPassword1", merr.Value)
	assert.Equal(t, "ThisIsAPassword1 does not match the password", err.Error())
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestMatchesRejectsOtherStrings(t *testing.T) {
	sec, err := NewPassword("aaaaaaaa")
	require.NoError(t, err)

	property := func(s string) bool {
		if s == "aaaaaaaa" {
			return true
		}
		var merr *MatchError
		return errors.As(sec.Matches(s), &merr) && merr.Value == s
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestZeroValueMatchesNothing(t *testing.T) {
	var sec Password
	assert.ErrorIs(t, sec.Matches(""), ErrPasswordMismatch)
	assert.ErrorIs(t, sec.Matches("aaaaaaaa"), ErrPasswordMismatch)
	assert.False(t, sec.Equal(sec))
	assert.Equal(t, "Secret(unset)", sec.String())
}

func TestDeterminism(t *testing.T) {
	a, err := NewPassword("ThisIsAPassword")
	require.NoError(t, err)
	b, err := NewPassword("ThisIsAPassword")
	require.NoError(t, err)
	c, err := NewPassword("ThisIsAnotherPassword")
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	for _, candidate := range []string{"", "ThisIsAPassword", "ThisIsAPassword1", "x"} {
		assert.Equal(t, a.Matches(candidate) == nil, b.Matches(candidate) == nil, candidate)
	}
}

func TestSumVectors(t *testing.T) {
	vectors := map[string]uint64{
		"":     0xef46db3751d8e999,
		"a":    0xd24ec4f1a98c6e5b,
		"as":   0x1c330fb2d66be179,
		"asd":  0x631c37ce72a97393,
		"asdf": 0x415872f599cea71e,
	}
	for in, want := range vectors {
		assert.Equal(t, Fingerprint(want), Sum(in), in)
	}
	assert.Equal(t, "ef46db3751d8e999", Sum("").String())
}

func TestSecretDoesNotRenderPlaintext(t *testing.T) {
	sec, err := NewPassword("ThisIsAPassword")
	require.NoError(t, err)

	for _, out := range []string{
		sec.String(),
		fmt.Sprintf("%v", sec),
		fmt.Sprintf("%+v", sec),
		sec.LogValue().String(),
	} {
		assert.NotContains(t, out, "ThisIsAPassword")
	}
	assert.Equal(t, "Secret("+Sum("ThisIsAPassword").String()+")", sec.String())
}

func TestErrorsLogValueRedacts(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := NewPassword("hunter2")
	logger.Info("rejected", "error", err)

	sec, _ := New[NoOpPolicy]("x")
	logger.Info("mismatch", "error", sec.Matches("hunter3"))

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "hunter3")
	assert.Contains(t, out, "error.reason=\"too short\"")
	assert.Contains(t, out, "error=\"password mismatch\"")
}

func TestSecretConcurrentUse(t *testing.T) {
	sec, err := NewPassword("ThisIsAPassword")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				assert.NoError(t, sec.Matches("ThisIsAPassword"))
			} else {
				assert.Error(t, sec.Matches(fmt.Sprint(i)))
			}
		}()
	}
	wg.Wait()
}
