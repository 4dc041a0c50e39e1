package levenshtein

import "errors"

// ErrInvalidConfig matches every *ConfigError under errors.Is.
var ErrInvalidConfig = errors.New("levenshtein: invalid config")

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "levenshtein: invalid config: " + e.Field + ": " + e.Message
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
