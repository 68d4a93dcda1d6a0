package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every ConfigurationError via errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigurationError reports an input that must be rejected before any simulation starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError builds a ConfigurationError with a formatted reason.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrInvalidConfiguration }

// AsConfigurationError unwraps err into a ConfigurationError when possible.
func AsConfigurationError(err error) (*ConfigurationError, bool) {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
