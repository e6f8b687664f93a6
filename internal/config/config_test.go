package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.ReportTimeout)
	assert.Equal(t, "attendance", cfg.Paths.AttendanceDir)
	assert.Equal(t, "roster.yaml", cfg.Paths.RosterFile)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative read timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }, true},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, true},
		{"no origins", func(c *Config) { c.Security.AllowedOrigins = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestMergeConfigsEnvWins(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9090
	fileCfg.Server.ReportTimeout = 10 * time.Minute
	fileCfg.Paths.AttendanceDir = "/data/minutes"
	fileCfg.Logging.Level = "debug"

	envCfg := Config{}
	envCfg.Server.Port = 3000

	merged := mergeConfigs(fileCfg, envCfg)

	// Env value kept, file fills the gaps
	assert.Equal(t, 3000, merged.Server.Port)
	assert.Equal(t, 10*time.Minute, merged.Server.ReportTimeout)
	assert.Equal(t, "/data/minutes", merged.Paths.AttendanceDir)
	assert.Equal(t, "debug", merged.Logging.Level)
}

func TestMergeConfigsFileOverridesDefaults(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9090
	fileCfg.Server.ReportTimeout = 10 * time.Minute
	fileCfg.Paths.ReportsDir = "/srv/reports"
	fileCfg.Logging.Level = "warn"

	// Simulate envconfig output with no variables set: every field
	// carries its struct default.
	envCfg := *Default()

	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, 9090, merged.Server.Port)
	assert.Equal(t, 10*time.Minute, merged.Server.ReportTimeout)
	assert.Equal(t, "/srv/reports", merged.Paths.ReportsDir)
	assert.Equal(t, "warn", merged.Logging.Level)
	// Fields the file does not set keep their defaults.
	assert.Equal(t, 15*time.Second, merged.Server.ReadTimeout)
	assert.Equal(t, "attendance", merged.Paths.AttendanceDir)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9191
  report_timeout: 2m
paths:
  attendance_dir: /srv/attendance
  roster_file: /srv/roster.yaml
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.ReportTimeout)
	assert.Equal(t, "/srv/attendance", cfg.Paths.AttendanceDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0644))

	_, err := loadFromFile(path)
	assert.Error(t, err)
}

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	content := `
officers:
  - Alice Smith
  - Bob Jones
aliases:
  bob: Bob Jones
  bobby: Bob Jones
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	roster, err := LoadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Smith", "Bob Jones"}, roster.Officers)
	assert.Equal(t, "Bob Jones", roster.Aliases["bob"])
	assert.Equal(t, "Bob Jones", roster.Aliases["bobby"])
}

func TestLoadRosterMissingFile(t *testing.T) {
	roster, err := LoadRoster(filepath.Join(t.TempDir(), "roster.yaml"))
	require.NoError(t, err)
	assert.Empty(t, roster.Officers)
	assert.Empty(t, roster.Aliases)
}

func TestLoadRosterInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("officers: {bad"), 0644))

	_, err := LoadRoster(path)
	assert.Error(t, err)
}

func TestResolvePaths(t *testing.T) {
	paths, err := ResolvePaths(PathsConfig{
		AttendanceDir: "attendance",
		ReportsDir:    "/var/reports",
		WebDir:        "web",
		LogsDir:       "logs",
		RosterFile:    "roster.yaml",
	})
	require.NoError(t, err)

	// Relative entries are anchored at the executable directory
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "attendance"), paths.AttendanceDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "roster.yaml"), paths.RosterFile)

	// Absolute entries are untouched
	assert.Equal(t, "/var/reports", paths.ReportsDir)
}

func TestReportPath(t *testing.T) {
	paths := &Paths{ReportsDir: "/var/reports"}
	assert.Equal(t, filepath.Join("/var/reports", "attendance_all_2024-03-14.md"),
		paths.ReportPath("attendance_all_2024-03-14.md"))
}
