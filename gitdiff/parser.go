// Package gitdiff parses diffs using the go-gitdiff library. It is the
// strict counterpart to unidiff: well-formed input yields precise results,
// malformed input is rejected so a fallback parser can take over.
package gitdiff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Parser = (*Parser)(nil)

// Parser is a strict diff parser backed by go-gitdiff.
type Parser struct{}

// NewParser creates a new strict parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts unified-diff text into a DiffSet, or fails if the text is
// not a well-formed git diff.
func (p *Parser) Parse(text string) (*diffscope.DiffSet, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("gitdiff: %w", err)
	}

	ds := &diffscope.DiffSet{}
	for _, f := range files {
		ds.Files = append(ds.Files, convertFile(f))
	}
	return ds, nil
}

func convertFile(f *gitdiff.File) diffscope.FileDiff {
	fd := diffscope.FileDiff{IsBinary: f.IsBinary}

	switch {
	case f.IsNew:
		fd.Kind = diffscope.Added
		fd.Path = f.NewName
	case f.IsDelete:
		fd.Kind = diffscope.Deleted
		fd.Path = f.OldName
		fd.OldPath = f.OldName
	case f.IsRename:
		fd.Kind = diffscope.Renamed
		fd.Path = f.NewName
		fd.OldPath = f.OldName
	default:
		fd.Kind = diffscope.Modified
		fd.Path = f.NewName
		if fd.Path == "" {
			fd.Path = f.OldName
		}
	}

	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}
	return fd
}

func convertFragment(frag *gitdiff.TextFragment) diffscope.DiffHunk {
	h := diffscope.DiffHunk{
		OldRange: diffscope.LineRange{Start: int(frag.OldPosition), Count: int(frag.OldLines)},
		NewRange: diffscope.LineRange{Start: int(frag.NewPosition), Count: int(frag.NewLines)},
	}
	for _, l := range frag.Lines {
		h.Lines = append(h.Lines, l.Op.String()+strings.TrimSuffix(l.Line, "\n"))
	}
	return h
}
