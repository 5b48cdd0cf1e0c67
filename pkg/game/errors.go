package game

import "fmt"

// ConfigurationError reports invalid setup parameters. It is returned once
// at engine construction and is fatal to starting a run.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// InvariantViolation reports a lock attempt that targeted an occupied
// cell. The collision engine guarantees free-ness before any lock, so this
// is a defect and aborts the run rather than being recovered.
type InvariantViolation struct {
	X int
	Y int
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("lock targets occupied cell (%d, %d)", e.X, e.Y)
}

// IsInvariantViolation reports whether err is an InvariantViolation.
func IsInvariantViolation(err error) bool {
	_, ok := err.(*InvariantViolation)
	return ok
}
