package posture

import "fmt"

// ConfigError reports malformed scoring configuration: weights that do not
// sum to 1 after redistribution, negative weights, or risk thresholds out of
// order. It is fatal: no assessment is produced when it occurs.
type ConfigError struct {
	// Key names the invalid weight or threshold.
	Key string

	// Reason explains what is wrong with it.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Key, e.Reason)
}
