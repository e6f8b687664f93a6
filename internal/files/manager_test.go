package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/config"
	"rollcall/pkg/contracts/domain"
)

func testManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	return NewManager(&config.Paths{ReportsDir: dir}), dir
}

func TestListReports(t *testing.T) {
	m, dir := testManager(t)

	old := filepath.Join(dir, "attendance_all_2024-03-01.md")
	recent := filepath.Join(dir, "attendance_all_2024-03-15.xlsx")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(recent, []byte("recent"), 0644))
	require.NoError(t, os.Chtimes(old, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))

	// Non-report files are skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	reports, err := m.ListReports()
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// Newest first
	assert.Equal(t, "attendance_all_2024-03-15.xlsx", reports[0].Name)
	assert.Equal(t, domain.FormatExcel, reports[0].Format)
	assert.Equal(t, "attendance_all_2024-03-01.md", reports[1].Name)
	assert.Equal(t, domain.FormatMarkdown, reports[1].Format)
	assert.Equal(t, int64(3), reports[1].Size)
}

func TestListReportsMissingDirectory(t *testing.T) {
	m := NewManager(&config.Paths{ReportsDir: filepath.Join(t.TempDir(), "nope")})

	reports, err := m.ListReports()
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestReportPath(t *testing.T) {
	m, dir := testManager(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attendance_both_2024-03-15.ipynb"), []byte("{}"), 0644))

	path, err := m.ReportPath("attendance_both_2024-03-15.ipynb")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "attendance_both_2024-03-15.ipynb"), path)
}

func TestReportPathRejectsTraversal(t *testing.T) {
	m, _ := testManager(t)

	for _, name := range []string{
		"",
		"../secret.md",
		"..",
		"sub/report.md",
		"/etc/passwd",
	} {
		_, err := m.ReportPath(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestReportPathMissingFile(t *testing.T) {
	m, _ := testManager(t)

	_, err := m.ReportPath("attendance_all_2024-01-01.md")
	assert.Error(t, err)
}
