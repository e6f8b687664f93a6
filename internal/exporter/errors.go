package exporter

import "fmt"

// FormatError reports a failure to produce one output format. Other
// formats in the same run are unaffected.
type FormatError struct {
	Format string
	Err    error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("export %s failed: %v", e.Format, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *FormatError) Unwrap() error {
	return e.Err
}
