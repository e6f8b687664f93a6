package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Document represents a discovered attendance notebook in the archive.
type Document struct {
	Path    string
	Name    string
	Month   string
	Date    time.Time
	Size    int64
	ModTime time.Time
}

// Discovery scans the attendance archive for notebook documents. The
// archive is organized as one folder per month (YYYY-MM) containing
// the meeting notebooks for that month.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDocuments walks every month folder under the archive root and
// returns the notebook documents found, sorted by meeting date and
// then by name. Entries that are not month folders, and files whose
// date cannot be derived, are skipped.
func (d *Discovery) FindDocuments() ([]Document, error) {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read archive directory %s: %w", d.basePath, err)
	}

	var docs []Document
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := time.Parse("2006-01", entry.Name()); err != nil {
			continue
		}

		monthDocs, err := d.findMonthDocuments(entry.Name())
		if err != nil {
			return nil, err
		}
		docs = append(docs, monthDocs...)
	}

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].Date.Equal(docs[j].Date) {
			return docs[i].Date.Before(docs[j].Date)
		}
		return docs[i].Name < docs[j].Name
	})

	return docs, nil
}

// findMonthDocuments lists the notebooks inside a single month folder.
func (d *Discovery) findMonthDocuments(month string) ([]Document, error) {
	dir := filepath.Join(d.basePath, month)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read month directory %s: %w", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".ipynb") {
			continue
		}

		date, ok := DeriveDate(month, name)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		docs = append(docs, Document{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Month:   month,
			Date:    date,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return docs, nil
}

// DeriveDate computes the meeting date of a notebook from its month
// folder and the leading digits of its filename. A file named
// "14-standup.ipynb" in folder "2024-03" is dated 2024-03-14.
func DeriveDate(month, filename string) (time.Time, bool) {
	base, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, false
	}

	digits := leadingDigits(filename)
	if digits == "" {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(digits)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, time.UTC)
	// Reject day numbers that overflow into the next month, e.g. 31 in April.
	if date.Month() != base.Month() {
		return time.Time{}, false
	}

	return date, true
}

// leadingDigits returns the run of ASCII digits at the start of s.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
