package secret

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Policy names understood by NewMatcher.
const (
	PolicyDefault = "default"
	PolicyNoOp    = "noop"
	PolicyStrict  = "strict"
)

// Matcher is the behaviour shared by every Secret and Sealed instantiation.
type Matcher interface {
	Matches(candidate string) error
}

var matchers = map[string]func(raw string) (Matcher, error){
	PolicyDefault: newMatcher[DefaultPolicy],
	PolicyNoOp:    newMatcher[NoOpPolicy],
	PolicyStrict:  newMatcher[StrictPolicy],
}

func newMatcher[P Policy](raw string) (Matcher, error) {
	s, err := New[P](raw)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// PolicyNames lists the registered policy names, sorted.
func PolicyNames() []string {
	names := lo.Keys(matchers)
	slices.Sort(names)
	return names
}

// NewMatcher builds the Secret instantiation registered under policy. It lets
// configuration pick a policy while each instance keeps a single, fixed one.
func NewMatcher(policy, raw string) (Matcher, error) {
	build, ok := matchers[policy]
	if !ok {
		return nil, unknownPolicy(policy)
	}
	return build(raw)
}

func unknownPolicy(policy string) error {
	return fmt.Errorf("%w %q, expected one of %s", ErrUnknownPolicy, policy, strings.Join(PolicyNames(), ", "))
}
