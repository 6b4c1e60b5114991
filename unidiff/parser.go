// Package unidiff parses unified-diff text with a permissive line-oriented
// state machine. Diff producers vary in minor formatting, so unparsable
// fragments are skipped rather than rejected: Parse never fails.
package unidiff

import (
	"strconv"
	"strings"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Parser = (*Parser)(nil)

// Parser is a permissive unified-diff parser.
type Parser struct{}

// NewParser creates a new permissive parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts unified-diff text into a DiffSet. The returned error is
// always nil; lines outside any recognized construct are ignored.
func (p *Parser) Parse(text string) (*diffscope.DiffSet, error) {
	ds := &diffscope.DiffSet{}
	if strings.TrimSpace(text) == "" {
		return ds, nil
	}

	var file *diffscope.FileDiff
	var hunk *diffscope.DiffHunk

	flushHunk := func() {
		if hunk != nil && file != nil {
			file.Hunks = append(file.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if file == nil {
			return
		}
		if file.Kind == diffscope.Deleted && file.Path == "" {
			file.Path = file.OldPath
		}
		if file.Kind != diffscope.Deleted && file.Kind != diffscope.Renamed {
			file.OldPath = ""
		}
		ds.Files = append(ds.Files, *file)
		file = nil
	}

	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		switch {
		case strings.HasPrefix(line, "diff --git "):
			flushFile()
			file = &diffscope.FileDiff{Kind: diffscope.Modified}
			// Initial paths from the header; later lines may override.
			if oldPath, newPath, ok := splitGitHeader(line); ok {
				file.OldPath, file.Path = oldPath, newPath
			}

		case file == nil:
			// Preamble or garbage between files.

		case strings.HasPrefix(line, "@@ "):
			flushHunk()
			if h, ok := parseHunkHeader(line); ok {
				hunk = &h
			}

		case hunk != nil && (strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, " ")):
			hunk.Lines = append(hunk.Lines, line)

		case strings.HasPrefix(line, "new file mode "):
			file.Kind = diffscope.Added

		case strings.HasPrefix(line, "deleted file mode "):
			file.Kind = diffscope.Deleted

		case strings.HasPrefix(line, "rename from "):
			file.Kind = diffscope.Renamed
			file.OldPath = strings.TrimPrefix(line, "rename from ")

		case strings.HasPrefix(line, "rename to "):
			file.Kind = diffscope.Renamed
			file.Path = strings.TrimPrefix(line, "rename to ")

		case strings.HasPrefix(line, "--- a/"):
			file.OldPath = line[len("--- a/"):]

		case strings.HasPrefix(line, "+++ b/"):
			file.Path = line[len("+++ b/"):]

		case strings.HasPrefix(line, "Binary files "):
			file.IsBinary = true
		}
	}
	flushFile()

	return ds, nil
}

// splitGitHeader extracts the a/ and b/ paths from a "diff --git" line.
// Paths containing " b/" defeat this; the --- and +++ lines correct them.
func splitGitHeader(line string) (oldPath, newPath string, ok bool) {
	rest := strings.TrimPrefix(line, "diff --git ")
	a, b, found := strings.Cut(rest, " b/")
	if !found || !strings.HasPrefix(a, "a/") {
		return "", "", false
	}
	return strings.TrimPrefix(a, "a/"), b, true
}

// parseHunkHeader parses a line like "@@ -1,5 +2,6 @@ optional section".
// A count omitted on either side defaults to 1.
func parseHunkHeader(line string) (diffscope.DiffHunk, bool) {
	rest := strings.TrimPrefix(line, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return diffscope.DiffHunk{}, false
	}
	fields := strings.Fields(rest[:end])
	if len(fields) < 2 {
		return diffscope.DiffHunk{}, false
	}
	return diffscope.DiffHunk{
		OldRange: parseRange(strings.TrimPrefix(fields[0], "-")),
		NewRange: parseRange(strings.TrimPrefix(fields[1], "+")),
	}, true
}

// parseRange parses "start,count" where count defaults to 1 when omitted.
func parseRange(s string) diffscope.LineRange {
	start, rest, hasCount := strings.Cut(s, ",")
	r := diffscope.LineRange{Count: 1}
	r.Start, _ = strconv.Atoi(start)
	if hasCount {
		r.Count, _ = strconv.Atoi(rest)
	}
	return r
}
