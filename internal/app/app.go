package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rollcall/internal/config"
	"rollcall/internal/errors"
	"rollcall/internal/infrastructure"
	customMiddleware "rollcall/internal/middleware"
	"rollcall/internal/services"
	handlers "rollcall/internal/transport/http"
	ws "rollcall/internal/websocket"
)

const (
	VERSION = "1.2.0"
	AppName = "Rollcall - Meeting Attendance Reports"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Roster        *config.Roster
	Router        *chi.Mux
	Server        *http.Server
	WebSocketHub  *ws.Hub
	ReportService *services.ReportService
	HealthService *services.HealthService
	Metrics       *infrastructure.Metrics
	Logger        *slog.Logger
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	roster, err := config.LoadRoster(paths.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(roster.Officers) == 0 {
		logger.Warn("Roster has no officers",
			slog.String("path", paths.RosterFile),
			slog.String("action", "officer reports will be empty"))
	}

	app := &Application{
		Config:  cfg,
		Paths:   paths,
		Roster:  roster,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	hub := ws.NewHub(a.Logger)
	hub.Start()
	a.WebSocketHub = hub

	a.ReportService = services.NewReportService(a.Paths, a.Roster, hub, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(VERSION, a.Paths, hub, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Minimal middleware that won't interfere with WebSocket. These do
	// not wrap the ResponseWriter.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// WebSocket route registered before the full middleware group
	r.HandleFunc("/ws", a.handleWebSocket)

	// Prometheus metrics endpoint, outside the middleware group
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Metrics(a.Metrics))
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.CORS(a.getCORSConfig()))

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
		a.setupStaticRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := errors.NewErrorHandler(a.Logger, false)
	validation := customMiddleware.NewValidationMiddleware(a.Logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		// Health endpoints with the standard timeout
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

			healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/live", healthHandler.HealthCheck)
			r.Get("/health/ready", healthHandler.ReadinessCheck)
		})

		// Report endpoints with a longer timeout: a run over a large
		// archive parses every document before responding.
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.ReportTimeout, a.Logger))
			r.Use(validation.ValidateRequest)

			reportHandler := handlers.NewReportHandler(a.ReportService, validation, a.Logger, errorHandler)
			r.Mount("/reports", reportHandler.Routes())
		})
	})
}

// setupStaticRoutes serves the web UI from the web directory
func (a *Application) setupStaticRoutes(r chi.Router) {
	webDir := a.Paths.WebDir
	if _, err := os.Stat(webDir); err != nil {
		a.Logger.Warn("Web directory not found, UI disabled",
			slog.String("path", webDir))
		return
	}

	r.Route("/static", func(r chi.Router) {
		r.Use(customMiddleware.Compress(5))
		r.Handle("/*", http.StripPrefix("/static", http.FileServer(http.Dir(filepath.Join(webDir, "static")))))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(webDir, "index.html"))
	})
}

// getCORSConfig returns CORS configuration based on the security settings
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	cfg := customMiddleware.CORSConfig{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           300,
		Logger:           a.Logger,
	}

	cfg.AllowedOrigins = []string{
		fmt.Sprintf("http://localhost:%d", a.Config.Server.Port),
		fmt.Sprintf("http://127.0.0.1:%d", a.Config.Server.Port),
	}
	if a.Config.Security.EnableCORS && len(a.Config.Security.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, a.Config.Security.AllowedOrigins...)
	}

	return cfg
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the application
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	a.Logger.InfoContext(ctx, "Application paths",
		slog.String("executable_dir", a.Paths.ExecutableDir),
		slog.String("attendance_dir", a.Paths.AttendanceDir),
		slog.String("reports_dir", a.Paths.ReportsDir),
		slog.String("web_dir", a.Paths.WebDir),
		slog.String("roster_file", a.Paths.RosterFile))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.WebSocketHub.Stop()
	infrastructure.CloseLogFile()

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

// handleWebSocket handles WebSocket connections
func (a *Application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	reqID := r.Header.Get("X-Request-ID")
	if reqID == "" {
		reqID = fmt.Sprintf("ws-%d", time.Now().UnixNano())
	}

	ctx := infrastructure.WithTraceID(r.Context(), reqID)
	a.Logger.InfoContext(ctx, "WebSocket upgrade request",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("origin", r.Header.Get("Origin")))

	upgrader := websocket.Upgrader{
		ReadBufferSize:  a.Config.WebSocket.ReadBufferSize,
		WriteBufferSize: a.Config.WebSocket.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")

			// No origin means same-origin or a non-browser client
			if origin == "" {
				return true
			}

			for _, allowed := range a.getCORSConfig().AllowedOrigins {
				if origin == allowed {
					return true
				}
			}

			a.Logger.WarnContext(ctx, "WebSocket origin not allowed",
				slog.String("origin", origin))
			return false
		},
		Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			a.Logger.ErrorContext(ctx, "WebSocket upgrade error",
				slog.Int("status", status),
				slog.String("reason", reason.Error()))
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.Logger.ErrorContext(ctx, "WebSocket upgrade failed",
			slog.String("error", err.Error()))
		return
	}

	client := ws.NewClientWithTrace(a.WebSocketHub, conn, reqID, a.Logger)
	a.WebSocketHub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// performStartupHealthCheck verifies the critical directories are usable
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	var warnings []string

	directories := map[string]string{
		"Reports": a.Paths.ReportsDir,
		"Logs":    a.Paths.LogsDir,
	}

	for name, dir := range directories {
		testFile := filepath.Join(dir, ".write_test")
		if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s directory not writable: %s", name, dir))
		} else {
			os.Remove(testFile)
		}
	}

	if _, err := os.Stat(a.Paths.AttendanceDir); err != nil {
		a.Logger.InfoContext(ctx, "Attendance archive not found yet",
			slog.String("path", a.Paths.AttendanceDir))
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "Startup health check passed")
	return nil
}
