package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"rollcall/internal/config"
	ws "rollcall/internal/websocket"
)

// HealthService provides health check functionality
type HealthService struct {
	version      string
	paths        *config.Paths
	webSocketHub *ws.Hub
	startTime    time.Time
	logger       *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version string, paths *config.Paths, webSocketHub *ws.Hub, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:      version,
		paths:        paths,
		webSocketHub: webSocketHub,
		startTime:    time.Now(),
		logger:       logger.With(slog.String("component", "health_service")),
	}
}

// Check returns the liveness status of the service.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
		},
	}
}

// Ready reports whether the service can serve report requests: the
// reports directory must be writable and the archive path, when it
// exists, must be readable.
func (s *HealthService) Ready(ctx context.Context) HealthStatus {
	services := map[string]interface{}{
		"archive": s.checkDir(s.paths.AttendanceDir, false),
		"reports": s.checkDir(s.paths.ReportsDir, true),
	}
	if s.webSocketHub != nil {
		services["websocket"] = ServiceHealth{
			Status:  "healthy",
			Message: "hub running",
		}
	}

	status := "ready"
	for _, svc := range services {
		if h, ok := svc.(ServiceHealth); ok && h.Status == "unhealthy" {
			status = "not_ready"
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Services:  services,
	}
}

// checkDir verifies a directory is usable. A missing archive is
// degraded, not unhealthy: report runs will answer with a 404 rather
// than make the whole service unready.
func (s *HealthService) checkDir(dir string, required bool) ServiceHealth {
	info, err := os.Stat(dir)
	if err != nil {
		status := "degraded"
		if required {
			status = "unhealthy"
		}
		return ServiceHealth{Status: status, Message: err.Error()}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "unhealthy", Message: dir + " is not a directory"}
	}
	return ServiceHealth{Status: "healthy"}
}
