package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rollcall/internal/config"
	"rollcall/internal/services"
	"rollcall/pkg/contracts/domain"
)

func main() {
	archiveDir := flag.String("in", "", "attendance archive directory (defaults to ./attendance)")
	outputDir := flag.String("out", "", "output directory for generated reports (defaults to ./reports)")
	rosterPath := flag.String("roster", "", "roster file with officers and aliases (defaults to ./roster.yaml)")
	scopeFlag := flag.String("scope", "both", "report scope: all, officers, or both")
	formatsFlag := flag.String("formats", "notebook,excel,markdown", "comma-separated output formats")
	timeout := flag.Duration("timeout", 5*time.Minute, "maximum time for the full run")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Explicit flags are resolved against the working directory;
	// defaults follow the executable like the web server does.
	paths, err := config.ResolvePaths(config.PathsConfig{
		AttendanceDir: absOr(*archiveDir, "attendance"),
		ReportsDir:    absOr(*outputDir, "reports"),
		WebDir:        "web",
		LogsDir:       "logs",
		RosterFile:    absOr(*rosterPath, "roster.yaml"),
	})
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}

	roster, err := config.LoadRoster(paths.RosterFile)
	if err != nil {
		slog.Error("Failed to load roster", "error", err, "path", paths.RosterFile)
		os.Exit(1)
	}

	req, err := buildRequest(*scopeFlag, *formatsFlag)
	if err != nil {
		slog.Error("Invalid arguments", "error", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	service := services.NewReportService(paths, roster, nil, nil, logger)

	slog.Info("Generating attendance report",
		"archive", paths.AttendanceDir,
		"scope", req.Scope,
		"formats", *formatsFlag)

	result, err := service.Generate(ctx, req)
	if err != nil && result == nil {
		if errors.Is(err, services.ErrNoAttendanceData) {
			slog.Error("No attendance documents found", "archive", paths.AttendanceDir)
		} else {
			slog.Error("Report generation failed", "error", err)
		}
		os.Exit(1)
	}

	if err != nil {
		// Partial success: some formats exported, some failed
		slog.Warn("Some formats failed to export", "error", err)
	}

	slog.Info("Report generation complete",
		"documents", result.Documents,
		"skipped", result.Skipped,
		"artifacts", len(result.Artifacts))

	for _, artifact := range result.Artifacts {
		fmt.Println(artifact.Path)
	}

	if err != nil {
		os.Exit(1)
	}
}

// buildRequest validates the scope and formats flags into a report request.
func buildRequest(scope, formats string) (domain.ReportRequest, error) {
	req := domain.ReportRequest{Scope: domain.Scope(scope)}
	if !req.Scope.Valid() {
		return req, fmt.Errorf("invalid scope %q (must be all, officers, or both)", scope)
	}

	for _, part := range strings.Split(formats, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f := domain.Format(part)
		if !f.Valid() {
			return req, fmt.Errorf("invalid format %q (must be notebook, excel, or markdown)", part)
		}
		req.Formats = append(req.Formats, f)
	}
	if len(req.Formats) == 0 {
		return req, fmt.Errorf("at least one output format is required")
	}

	return req, nil
}

func absOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	if abs, err := filepath.Abs(v); err == nil {
		return abs
	}
	return v
}
