// Package diffscope provides domain types for structural analysis of diffs.
package diffscope

import "strings"

// DiffSet represents a complete diff containing zero or more file changes.
// File order matches appearance order in the source text.
type DiffSet struct {
	Files []FileDiff
}

// FileDiff represents changes to a single file.
type FileDiff struct {
	Path     string     // Post-change location, or pre-change location for Deleted
	OldPath  string     // Set only for Renamed and Deleted
	Kind     ChangeKind // Added, Modified, Deleted, Renamed
	Hunks    []DiffHunk // Empty for pure renames and mode changes
	IsBinary bool       // Binary files carry no hunks
}

// ChangeKind represents the type of operation performed on a file.
type ChangeKind int

// File change kinds.
const (
	Modified ChangeKind = iota
	Added
	Deleted
	Renamed
)

// String returns the lowercase label used in summaries and JSON output.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	default:
		return "modified"
	}
}

// LineRange is a 1-based line range from a hunk header. Count may be zero
// for a pure insertion or deletion point.
type LineRange struct {
	Start int
	Count int
}

// DiffHunk represents a contiguous block of changes within a file. Lines
// retain their leading '+', '-' or ' ' marker.
type DiffHunk struct {
	OldRange LineRange
	NewRange LineRange
	Lines    []string
}

// Additions returns the hunk's added lines with the '+' marker stripped.
func (h DiffHunk) Additions() []string {
	return h.linesWithPrefix("+")
}

// Deletions returns the hunk's removed lines with the '-' marker stripped.
func (h DiffHunk) Deletions() []string {
	return h.linesWithPrefix("-")
}

func (h DiffHunk) linesWithPrefix(prefix string) []string {
	var out []string
	for _, line := range h.Lines {
		if strings.HasPrefix(line, prefix) {
			out = append(out, line[1:])
		}
	}
	return out
}

// TotalLines counts every hunk line in the diff, context included.
func (d *DiffSet) TotalLines() int {
	n := 0
	for _, f := range d.Files {
		for _, h := range f.Hunks {
			n += len(h.Lines)
		}
	}
	return n
}

// ChangedLines counts added and removed lines across the diff.
func (d *DiffSet) ChangedLines() int {
	n := 0
	for _, f := range d.Files {
		for _, h := range f.Hunks {
			for _, line := range h.Lines {
				if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
					n++
				}
			}
		}
	}
	return n
}
