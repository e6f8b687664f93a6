package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/config"
)

func healthService(t *testing.T, paths *config.Paths) *HealthService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHealthService("test", paths, nil, logger)
}

func TestHealthCheck(t *testing.T) {
	svc := healthService(t, &config.Paths{})

	status := svc.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "test", status.Version)
	assert.NotEmpty(t, status.Runtime["go_version"])
}

func TestReadyAllHealthy(t *testing.T) {
	base := t.TempDir()
	archive := filepath.Join(base, "attendance")
	reports := filepath.Join(base, "reports")
	require.NoError(t, os.MkdirAll(archive, 0755))
	require.NoError(t, os.MkdirAll(reports, 0755))

	svc := healthService(t, &config.Paths{AttendanceDir: archive, ReportsDir: reports})

	status := svc.Ready(context.Background())
	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, "healthy", status.Services["archive"].(ServiceHealth).Status)
	assert.Equal(t, "healthy", status.Services["reports"].(ServiceHealth).Status)
}

func TestReadyMissingArchiveIsDegraded(t *testing.T) {
	base := t.TempDir()
	reports := filepath.Join(base, "reports")
	require.NoError(t, os.MkdirAll(reports, 0755))

	svc := healthService(t, &config.Paths{
		AttendanceDir: filepath.Join(base, "attendance"),
		ReportsDir:    reports,
	})

	status := svc.Ready(context.Background())
	assert.Equal(t, "ready", status.Status, "missing archive degrades but does not block readiness")
	assert.Equal(t, "degraded", status.Services["archive"].(ServiceHealth).Status)
}

func TestReadyMissingReportsDirIsNotReady(t *testing.T) {
	base := t.TempDir()

	svc := healthService(t, &config.Paths{
		AttendanceDir: base,
		ReportsDir:    filepath.Join(base, "reports"),
	})

	status := svc.Ready(context.Background())
	assert.Equal(t, "not_ready", status.Status)
	assert.Equal(t, "unhealthy", status.Services["reports"].(ServiceHealth).Status)
}
