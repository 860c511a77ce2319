// Package stacktrace trims goroutine stack dumps down to this module's frames
// so panic logs stay short.
package stacktrace
