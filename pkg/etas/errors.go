package etas

import "fmt"

// ConfigurationError marks a parametrization the model rejects up front,
// e.g. a supercritical branching configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "etas: configuration error: " + e.Reason
}

// DataInconsistencyError marks a catalog that violates the estimator's
// preconditions. Index is the offending event position, or -1.
type DataInconsistencyError struct {
	Index  int
	Reason string
}

func (e *DataInconsistencyError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("etas: inconsistent catalog at event %d: %s", e.Index, e.Reason)
	}
	return "etas: inconsistent catalog: " + e.Reason
}

// BracketingError is returned when a parameter update's search interval does
// not bracket a root of its stationarity equation. It wraps the underlying
// solver error.
type BracketingError struct {
	Param     string
	Round     int
	Iteration int
	Lo, Hi    float64
	Err       error
}

func (e *BracketingError) Error() string {
	return fmt.Sprintf("etas: %s update failed at round %d iteration %d, interval [%g, %g] does not bracket a root: %v",
		e.Param, e.Round, e.Iteration, e.Lo, e.Hi, e.Err)
}

func (e *BracketingError) Unwrap() error {
	return e.Err
}
