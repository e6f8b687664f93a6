package attendance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rollcall/pkg/contracts/domain"
)

const membersMarker = "members:"

// ParseError reports a document that could not be decoded at all. A
// notebook without a members section is NOT a parse error; it parses
// to an empty name list.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// notebook mirrors the subset of the nbformat JSON container we read.
type notebook struct {
	Cells []cell `json:"cells"`
}

type cell struct {
	CellType string     `json:"cell_type"`
	Source   sourceText `json:"source"`
}

// sourceText accepts both nbformat spellings of cell source: a single
// string or an array of line strings.
type sourceText string

func (s *sourceText) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = sourceText(single)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cell source is neither string nor string array")
	}
	*s = sourceText(strings.Join(lines, ""))
	return nil
}

// Parse decodes a notebook document and extracts its member list.
//
// Cells are scanned in order; the first cell containing the "members:"
// marker (case-insensitive substring, preserved from the archive
// format) supplies the list. Entries are the remainder of the marker
// line, if it starts with a bullet, plus every following line starting
// with "-" or "*"; the first blank or non-bullet line ends the list.
// A document with no marker yields an empty name list and no error.
func Parse(content []byte, path string, date time.Time) (domain.RawRecord, error) {
	rec := domain.RawRecord{Path: path, Date: date}

	var nb notebook
	if err := json.Unmarshal(content, &nb); err != nil {
		return rec, &ParseError{Path: path, Err: err}
	}

	for _, c := range nb.Cells {
		names, found := extractMembers(string(c.Source))
		if found {
			rec.Names = names
			break
		}
	}
	return rec, nil
}

// extractMembers scans one cell's text for the members section. The
// second return value reports whether the marker was present at all.
func extractMembers(text string) ([]string, bool) {
	lines := strings.Split(text, "\n")
	var names []string

	inSection := false
	for _, line := range lines {
		if !inSection {
			idx := markerIndex(line)
			if idx < 0 {
				continue
			}
			inSection = true
			// The marker line may carry the first entry inline.
			rest := strings.TrimSpace(line[idx+len(membersMarker):])
			if name, ok := bulletEntry(rest); ok && name != "" {
				names = append(names, name)
			}
			continue
		}

		stripped := strings.TrimSpace(line)
		name, ok := bulletEntry(stripped)
		if !ok {
			break // blank or non-bullet line ends the list
		}
		if name != "" {
			names = append(names, name)
		}
	}

	return names, inSection
}

// markerIndex returns the byte offset of the members marker in line,
// matched case-insensitively, or -1. Folding is done per window so the
// offset stays valid on the original line even when earlier runes
// change byte length under ToLower.
func markerIndex(line string) int {
	for i := 0; i+len(membersMarker) <= len(line); i++ {
		if strings.EqualFold(line[i:i+len(membersMarker)], membersMarker) {
			return i
		}
	}
	return -1
}

// bulletEntry returns the entry text of a bullet line. Lines that are
// blank or carry no bullet marker are not entries; an empty name after
// a bullet still counts as part of the list but contributes nothing.
func bulletEntry(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
		return "", false
	}
	return strings.TrimSpace(line[1:]), true
}
