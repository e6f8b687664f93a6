package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all resolved application paths. This is the single
// source of truth for file locations; everything is resolved against
// the executable directory, never the current working directory, so
// the application behaves identically wherever it is launched from.
type Paths struct {
	ExecutableDir string
	AttendanceDir string
	ReportsDir    string
	WebDir        string
	LogsDir       string
	RosterFile    string
}

// ResolvePaths resolves the configured paths against the executable
// directory. Absolute entries in the config are kept as-is.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	exeDir := filepath.Dir(exe)

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(exeDir, p)
	}

	return &Paths{
		ExecutableDir: exeDir,
		AttendanceDir: resolve(cfg.AttendanceDir),
		ReportsDir:    resolve(cfg.ReportsDir),
		WebDir:        resolve(cfg.WebDir),
		LogsDir:       resolve(cfg.LogsDir),
		RosterFile:    resolve(cfg.RosterFile),
	}, nil
}

// EnsureDirectories creates the directories the application writes to.
// The attendance archive is read-only and deliberately not created
// here: a missing archive should surface as "no documents found", not
// be papered over with an empty directory.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportPath returns the full path for a report artifact filename.
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}
