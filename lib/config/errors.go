package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the kind shared by every configuration failure.
// Use errors.Is(err, ErrConfiguration) to test for it.
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports a setting that could not be resolved. File, Section
// and Key are filled in as far as resolution got before failing. Env is set
// instead of File when the offending value came from the environment.
type ConfigError struct {
	File    string
	Env     string
	Section string
	Key     string
	Reason  string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("configuration: %s", e.Reason)
	if e.Section != "" {
		msg += fmt.Sprintf(" (section %q", e.Section)
		if e.Key != "" {
			msg += fmt.Sprintf(", key %q", e.Key)
		}
		msg += ")"
	} else if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Env != "" {
		msg += fmt.Sprintf(" from environment variable %s", e.Env)
	} else if e.File != "" {
		msg += fmt.Sprintf(" in file %s", e.File)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes every ConfigError match ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// IsConfigError reports whether err is, or wraps, a configuration failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
