package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "rollcall/internal/errors"
	"rollcall/internal/middleware"
	"rollcall/internal/services"
	"rollcall/pkg/contracts/domain"
)

// ReportHandler handles report-related HTTP requests with RFC 7807 compliance
type ReportHandler struct {
	service      ReportServiceInterface
	validation   *middleware.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler with RFC 7807 error handling
func NewReportHandler(service ReportServiceInterface, validation *middleware.ValidationMiddleware, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		validation:   validation,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes with proper Chi patterns
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.GenerateReport)
	r.Get("/", h.ListReports)
	r.Get("/download/{filename}", h.DownloadReport)

	return r
}

// GenerateReport handles POST /api/reports
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validation.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "report requested",
		slog.String("scope", string(req.Scope)),
		slog.Int("formats", len(req.Formats)))

	result, err := h.service.Generate(r.Context(), req)
	if err != nil && result == nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	// Partial export failure still returns the artifacts that succeeded.
	status := http.StatusOK
	response := map[string]interface{}{
		"report":    result.Set,
		"artifacts": result.Artifacts,
		"documents": result.Documents,
		"skipped":   result.Skipped,
	}
	if err != nil {
		status = http.StatusMultiStatus
		response["export_error"] = err.Error()
	}

	render.Status(r, status)
	render.JSON(w, r, response)
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.service.ListReports(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"reports": artifacts,
		"count":   len(artifacts),
	})
}

// DownloadReport handles GET /api/reports/download/{filename}
func (h *ReportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("filename", "Filename is required"))
		return
	}

	path, err := h.service.ReportPath(r.Context(), filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(path)+"\"")
	w.Header().Set("Content-Type", contentTypeForReport(path))
	http.ServeFile(w, r, path)
}

// mapServiceError translates service sentinels into API errors.
func (h *ReportHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNoAttendanceData):
		return apierrors.ErrNoData
	case errors.Is(err, services.ErrReportNotFound):
		return apierrors.ErrReportNotFound
	case errors.Is(err, services.ErrInvalidScope),
		errors.Is(err, services.ErrInvalidFormat),
		errors.Is(err, services.ErrNoFormats):
		return apierrors.NewValidationError(err.Error())
	default:
		return err
	}
}

// contentTypeForReport maps an artifact path to its MIME type.
func contentTypeForReport(path string) string {
	switch filepath.Ext(path) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".ipynb":
		return "application/x-ipynb+json"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
