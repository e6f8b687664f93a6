package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"rollcall/internal/attendance"
	"rollcall/internal/config"
	"rollcall/internal/exporter"
	"rollcall/internal/files"
	"rollcall/internal/infrastructure"
	"rollcall/pkg/contracts/domain"
)

// ProgressBroadcaster receives progress events while a report run is
// in flight. The websocket hub implements it; a nil broadcaster
// disables progress reporting.
type ProgressBroadcaster interface {
	BroadcastProgress(step string, progress int, message string)
	BroadcastError(code, message, step string)
	BroadcastReportComplete(data interface{})
}

// GenerateResult is the outcome of one report run.
type GenerateResult struct {
	Set       domain.ReportSet  `json:"report"`
	Artifacts []domain.Artifact `json:"artifacts"`
	Documents int               `json:"documents"`
	Skipped   int               `json:"skipped"`
}

// ReportService drives a full report run: discover documents in the
// archive, parse them, aggregate attendance, build the requested
// views and export them.
type ReportService struct {
	paths     *config.Paths
	roster    *config.Roster
	discovery *files.Discovery
	manager   *files.Manager
	exporter  *exporter.Exporter
	hub       ProgressBroadcaster
	metrics   *infrastructure.Metrics
	logger    *slog.Logger
}

// NewReportService creates a new report service. hub and metrics may
// be nil, e.g. for CLI use.
func NewReportService(paths *config.Paths, roster *config.Roster, hub ProgressBroadcaster, metrics *infrastructure.Metrics, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "report_service"))

	logger.Info("ReportService initialized with paths",
		slog.String("attendance_dir", paths.AttendanceDir),
		slog.String("reports_dir", paths.ReportsDir),
		slog.Int("officers", len(roster.Officers)))

	return &ReportService{
		paths:     paths,
		roster:    roster,
		discovery: files.NewDiscovery(paths.AttendanceDir),
		manager:   files.NewManager(paths),
		exporter:  exporter.New(paths, logger),
		hub:       hub,
		metrics:   metrics,
		logger:    logger,
	}
}

// Generate runs one report: returns the report set together with the
// artifacts that were written. Documents that cannot be parsed are
// skipped with a warning; an archive without a single parsable
// document yields ErrNoAttendanceData.
func (s *ReportService) Generate(ctx context.Context, req domain.ReportRequest) (*GenerateResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	s.progress("discover", 0, "Scanning attendance archive")

	docs, err := s.discovery.FindDocuments()
	if err != nil {
		s.broadcastError("DISCOVERY_FAILED", err.Error(), "discover")
		return nil, fmt.Errorf("failed to scan attendance archive: %w", err)
	}

	s.logger.InfoContext(ctx, "archive scanned",
		slog.Int("documents", len(docs)),
		slog.String("attendance_dir", s.paths.AttendanceDir))

	if len(docs) == 0 {
		s.broadcastError("NO_ATTENDANCE_DATA", ErrNoAttendanceData.Error(), "discover")
		return nil, ErrNoAttendanceData
	}

	s.progress("parse", 20, fmt.Sprintf("Parsing %d documents", len(docs)))

	normalizer := attendance.NewNormalizer(s.roster.Aliases)
	agg := attendance.NewAggregate(normalizer)

	parsed, skipped := 0, 0
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(doc.Path)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unreadable document",
				slog.String("path", doc.Path),
				slog.String("error", err.Error()))
			skipped++
			s.countParseFailure()
			continue
		}

		rec, err := attendance.Parse(content, doc.Path, doc.Date)
		if err != nil {
			var parseErr *attendance.ParseError
			if errors.As(err, &parseErr) {
				s.logger.WarnContext(ctx, "skipping corrupt document",
					slog.String("path", parseErr.Path),
					slog.String("error", parseErr.Err.Error()))
				skipped++
				s.countParseFailure()
				continue
			}
			return nil, err
		}

		agg.Fold(rec)
		parsed++
		if s.metrics != nil {
			s.metrics.DocumentsParsed.Inc()
		}

		if len(docs) >= 10 && (i+1)%(len(docs)/10) == 0 {
			s.progress("parse", 20+40*(i+1)/len(docs), fmt.Sprintf("Parsed %d of %d documents", i+1, len(docs)))
		}
	}

	if parsed == 0 {
		s.broadcastError("NO_ATTENDANCE_DATA", ErrNoAttendanceData.Error(), "parse")
		return nil, ErrNoAttendanceData
	}

	s.progress("aggregate", 60, "Aggregating attendance")

	officers := attendance.NewOfficerSet(s.roster.Officers, normalizer)
	generatedAt := time.Now()

	set := domain.ReportSet{
		Scope:       req.Scope,
		Views:       agg.Views(req.Scope, officers, generatedAt),
		GeneratedAt: generatedAt,
	}

	s.progress("export", 80, fmt.Sprintf("Exporting %d formats", len(req.Formats)))

	artifacts, exportErr := s.exporter.Export(ctx, set, req.Formats)
	if exportErr != nil {
		s.countExportFailures(exportErr)
		if len(artifacts) == 0 {
			s.broadcastError("EXPORT_FAILED", exportErr.Error(), "export")
			return nil, exportErr
		}
		s.logger.WarnContext(ctx, "partial export failure",
			slog.Int("succeeded", len(artifacts)),
			slog.String("error", exportErr.Error()))
	}

	result := &GenerateResult{
		Set:       set,
		Artifacts: artifacts,
		Documents: parsed,
		Skipped:   skipped,
	}

	if s.metrics != nil {
		s.metrics.ReportsGenerated.WithLabelValues(string(req.Scope)).Inc()
		s.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	}

	s.progress("done", 100, "Report complete")
	if s.hub != nil {
		s.hub.BroadcastReportComplete(result)
	}

	s.logger.InfoContext(ctx, "report generated",
		slog.String("scope", string(req.Scope)),
		slog.Int("documents", parsed),
		slog.Int("skipped", skipped),
		slog.Int("artifacts", len(artifacts)),
		slog.Duration("duration", time.Since(start)))

	return result, exportErr
}

// ListReports returns the artifacts currently in the reports directory.
func (s *ReportService) ListReports(ctx context.Context) ([]domain.Artifact, error) {
	artifacts, err := s.manager.ListReports()
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "listed reports", slog.Int("count", len(artifacts)))
	return artifacts, nil
}

// ReportPath resolves a report filename for download. Returns
// ErrReportNotFound when the name does not resolve to an artifact.
func (s *ReportService) ReportPath(ctx context.Context, name string) (string, error) {
	path, err := s.manager.ReportPath(name)
	if err != nil {
		s.logger.WarnContext(ctx, "report lookup failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return "", ErrReportNotFound
	}
	return path, nil
}

// validateRequest checks scope and formats before any work starts.
func validateRequest(req domain.ReportRequest) error {
	if !req.Scope.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidScope, req.Scope)
	}
	if len(req.Formats) == 0 {
		return ErrNoFormats
	}
	for _, f := range req.Formats {
		if !f.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
		}
	}
	return nil
}

func (s *ReportService) progress(step string, pct int, message string) {
	if s.hub != nil {
		s.hub.BroadcastProgress(step, pct, message)
	}
}

func (s *ReportService) broadcastError(code, message, step string) {
	if s.hub != nil {
		s.hub.BroadcastError(code, message, step)
	}
}

func (s *ReportService) countParseFailure() {
	if s.metrics != nil {
		s.metrics.ParseFailures.Inc()
	}
}

func (s *ReportService) countExportFailures(err error) {
	if s.metrics == nil {
		return
	}
	var formatErr *exporter.FormatError
	if errors.As(err, &formatErr) {
		s.metrics.ExportFailures.WithLabelValues(formatErr.Format).Inc()
	}
}
