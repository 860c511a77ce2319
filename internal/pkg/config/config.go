package config

import (
	"io"
	"time"
)

// Config defines the lookups the application performs on its configuration.
// Missing keys and values that fail to convert yield the type's zero value.
type Config interface {
	io.Closer

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetUint32 retrieves the value associated with key as a uint32.
	GetUint32(key string) uint32

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the value associated with key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetArray retrieves the value associated with key as a slice of strings.
	// Values are stored either as a list or with format <element1>,<element2>,...
	GetArray(key string) []string
}
