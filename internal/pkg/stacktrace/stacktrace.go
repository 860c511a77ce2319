package stacktrace

import (
	"strings"

	"github.com/samber/lo"
)

// InternalFrames extracts "internal/<pkg>/<file>.go:<line>" locations from a
// runtime/debug.Stack dump, innermost first. Frames outside internal/ are dropped.
func InternalFrames(stack []byte) []string {
	return lo.FilterMap(strings.Split(string(stack), "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "/") && !strings.Contains(line, ":/") {
			return "", false
		}

		_, rel, ok := strings.Cut(line, "/internal/")
		if !ok {
			return "", false
		}
		file, rest, ok := strings.Cut(rel, ".go:")
		if !ok {
			return "", false
		}
		lineNo, _, _ := strings.Cut(rest, " ")
		return "internal/" + file + ".go:" + lineNo, true
	})
}
