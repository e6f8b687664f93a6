package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/services"
)

func testHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestHandleErrorAPIError(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)

	h.HandleError(rec, req, ErrNoData)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	problem := decodeProblem(t, rec)
	assert.Equal(t, float64(http.StatusNotFound), problem["status"])
	assert.Equal(t, "/api/reports", problem["instance"])
	assert.Contains(t, problem["detail"], "No attendance documents")
}

func TestHandleErrorReportNotFound(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/download/x.md", nil)

	h.HandleError(rec, req, ErrReportNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleErrorValidation(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)

	h.HandleError(rec, req, ErrValidation("scope", "Scope must be one of all, officers, both"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "Bad Request", problem["title"])
}

func TestHandleErrorGenericFallsBackToInternal(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)

	h.HandleError(rec, req, errors.New("disk exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleErrorNoAttendanceStringMatch(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)

	h.HandleError(rec, req, errors.New("no attendance documents found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleErrorWrappedSentinels(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name     string
		err      error
		status   int
		probType string
	}{
		{"no attendance data", fmt.Errorf("generating report: %w", services.ErrNoAttendanceData), http.StatusNotFound, TypeNoAttendanceData},
		{"report not found", fmt.Errorf("resolving artifact: %w", services.ErrReportNotFound), http.StatusNotFound, TypeReportNotFound},
		{"invalid scope", fmt.Errorf("checking request: %w", services.ErrInvalidScope), http.StatusBadRequest, TypeValidation},
		{"service unavailable", fmt.Errorf("pipeline: %w", services.ErrServiceUnavailable), http.StatusServiceUnavailable, TypeServiceDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			problem := decodeProblem(t, rec)
			assert.Equal(t, tt.probType, problem["type"])
		})
	}
}

func TestNotFoundHandler(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)

	h.NotFound(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "/api/nope", problem["instance"])
}

func TestMethodNotAllowedHandler(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reports", nil)

	h.MethodNotAllowed(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePanic(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)

	h.HandlePanic(rec, req, "unexpected nil")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestProblemDetailsExtensions(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, "/errors/validation", "Bad Request", "scope is invalid", "/api/reports")
	pd.WithExtension("field", "scope")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "scope", out["field"])
	assert.Equal(t, "/errors/validation", out["type"])
}

func TestAPIErrorHelpers(t *testing.T) {
	err := ExportError("excel", errors.New("disk full"))
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, "EXPORT_FAILED", err.ErrorCode)

	err = NewValidationError("formats must not be empty")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "formats must not be empty", err.Message)

	err = InvalidRequestWithError(errors.New("unexpected EOF"))
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
	assert.Equal(t, "unexpected EOF", err.Details)
}
