package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, base, month, name string) {
	t.Helper()
	dir := filepath.Join(base, month)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"cells":[]}`), 0644))
}

func TestDeriveDate(t *testing.T) {
	tests := []struct {
		name     string
		month    string
		filename string
		want     time.Time
		ok       bool
	}{
		{"simple day", "2024-03", "14-standup.ipynb", time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), true},
		{"zero padded", "2024-03", "05_minutes.ipynb", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"digits only prefix", "2024-12", "25.ipynb", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), true},
		{"no leading digits", "2024-03", "standup.ipynb", time.Time{}, false},
		{"day zero", "2024-03", "0-notes.ipynb", time.Time{}, false},
		{"day beyond 31", "2024-03", "32-notes.ipynb", time.Time{}, false},
		{"april 31 overflows", "2024-04", "31-notes.ipynb", time.Time{}, false},
		{"february 30 overflows", "2024-02", "30-notes.ipynb", time.Time{}, false},
		{"leap day valid", "2024-02", "29-notes.ipynb", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"non leap february 29", "2023-02", "29-notes.ipynb", time.Time{}, false},
		{"bad month folder", "notes", "14-standup.ipynb", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DeriveDate(tt.month, tt.filename)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestFindDocuments(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, base, "2024-03", "14-standup.ipynb")
	writeDoc(t, base, "2024-03", "05_minutes.ipynb")
	writeDoc(t, base, "2024-02", "29-retro.ipynb")

	// Ignored: not a month folder, not a notebook, underivable date
	writeDoc(t, base, "archive-old", "14-standup.ipynb")
	writeDoc(t, base, "2024-03", "notes.txt")
	writeDoc(t, base, "2024-03", "summary.ipynb")

	docs, err := NewDiscovery(base).FindDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// Sorted by meeting date
	assert.Equal(t, "29-retro.ipynb", docs[0].Name)
	assert.Equal(t, "2024-02", docs[0].Month)
	assert.Equal(t, "05_minutes.ipynb", docs[1].Name)
	assert.Equal(t, "14-standup.ipynb", docs[2].Name)
	assert.True(t, docs[2].Date.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)))
}

func TestFindDocumentsSameDateSortedByName(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, base, "2024-03", "14-second.ipynb")
	writeDoc(t, base, "2024-03", "14-first.ipynb")

	docs, err := NewDiscovery(base).FindDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "14-first.ipynb", docs[0].Name)
	assert.Equal(t, "14-second.ipynb", docs[1].Name)
}

func TestFindDocumentsMissingArchive(t *testing.T) {
	docs, err := NewDiscovery(filepath.Join(t.TempDir(), "nope")).FindDocuments()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFindDocumentsEmptyArchive(t *testing.T) {
	docs, err := NewDiscovery(t.TempDir()).FindDocuments()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFindDocumentsCaseInsensitiveExtension(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, base, "2024-03", "14-standup.IPYNB")

	docs, err := NewDiscovery(base).FindDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 1)
}
