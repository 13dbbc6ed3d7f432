package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned by Step, Run and the data accessors before
	// a successful Initialize.
	ErrNotInitialized = errors.New("simulation not initialized")

	// ErrConfiguration matches every *ConfigError via errors.Is.
	ErrConfiguration = errors.New("invalid configuration")
)

// ConfigError reports a rejected Initialize or Run argument. The simulation
// keeps whatever state it had before the call.
type ConfigError struct {
	Field  string
	Reason string
	Err    error // underlying cause, if any
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }
