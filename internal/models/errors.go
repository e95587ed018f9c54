package models

import "fmt"

// ValidationError reports malformed caller input. It names the offending
// field so the caller can correct it; it is never fatal.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientDataError reports a vehicle profile missing data a
// computation needs. The caller should prompt the user to complete the
// profile; partial results may still be available.
type InsufficientDataError struct {
	Missing string `json:"missing"`
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("missing required data: %s", e.Missing)
}
