package score

import "fmt"

// ConfigError indicates a caller contract violation (unknown category
// filter, malformed context). It is the only error class that fails a run
// before any analyzer executes.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
