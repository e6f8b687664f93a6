// Package http contains the chi handlers for the report API. Errors
// are rendered as RFC 7807 problem documents through the shared
// ErrorHandler.
package http
