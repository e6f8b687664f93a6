package services

import "errors"

// Report service errors
var (
	// Attendance data errors
	ErrNoAttendanceData = errors.New("no attendance documents found")

	// Request errors
	ErrInvalidScope  = errors.New("invalid report scope")
	ErrInvalidFormat = errors.New("invalid report format")
	ErrNoFormats     = errors.New("no report formats requested")

	// Artifact errors
	ErrReportNotFound = errors.New("report file not found")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
