package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rollcall/internal/config"
	"rollcall/pkg/contracts/domain"
)

// Manager provides access to generated report artifacts on disk.
type Manager struct {
	paths *config.Paths
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// ListReports returns the report artifacts in the reports directory,
// newest first.
func (m *Manager) ListReports() ([]domain.Artifact, error) {
	entries, err := os.ReadDir(m.paths.ReportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reports directory %s: %w", m.paths.ReportsDir, err)
	}

	var artifacts []domain.Artifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		format, ok := formatForFile(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		artifacts = append(artifacts, domain.Artifact{
			Format:   format,
			Name:     entry.Name(),
			Path:     filepath.Join(m.paths.ReportsDir, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Modified.After(artifacts[j].Modified)
	})

	return artifacts, nil
}

// ReportPath resolves a report filename to its absolute path. Names
// containing path separators or traversal elements are rejected, so
// handlers can pass user input directly.
func (m *Manager) ReportPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid report name %q", name)
	}

	path := filepath.Join(m.paths.ReportsDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("report %s not found: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("report %s not found", name)
	}

	return path, nil
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// formatForFile maps an artifact filename to its report format.
func formatForFile(name string) (domain.Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ipynb":
		return domain.FormatNotebook, true
	case ".xlsx":
		return domain.FormatExcel, true
	case ".md":
		return domain.FormatMarkdown, true
	default:
		return "", false
	}
}
