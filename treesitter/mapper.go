package treesitter

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/fwojciec/diffscope"
	sitter "github.com/smacker/go-tree-sitter"
)

// AffectedNodes maps diff hunks onto the structural nodes they touch. The
// language's structural query runs once over the whole tree; each hunk's
// new-side line range is translated to a byte range and intersected with
// the candidate nodes under strict half-open semantics. Nodes touched by
// several hunks are reported once, ordered by byte range.
func (r *Registry) AffectedNodes(ast *SourceAST, hunks []diffscope.DiffHunk, logger *slog.Logger) ([]diffscope.StructuralNode, error) {
	if logger == nil {
		logger = slog.Default()
	}
	lang, ok := r.byID[ast.Language]
	if !ok {
		return nil, fmt.Errorf("no compiled query for language %q", ast.Language)
	}

	candidates := collectCandidates(lang.query, ast)

	type dedupKey struct {
		start, end int
		kind       diffscope.NodeKind
		name       string
	}
	seen := make(map[dedupKey]bool)
	var out []diffscope.StructuralNode

	for _, h := range hunks {
		hunkStart, hunkEnd, ok := hunkByteRange(ast.Source, h.NewRange)
		if !ok {
			logger.Warn("hunk starts beyond end of file, skipping",
				"path", ast.Path, "start_line", h.NewRange.Start, "count", h.NewRange.Count)
			continue
		}
		for _, cand := range candidates {
			nodeStart, nodeEnd := int(cand.node.StartByte()), int(cand.node.EndByte())
			if nodeStart >= hunkEnd || nodeEnd <= hunkStart {
				continue
			}
			name := lang.Name(cand.node, ast.Source)
			key := dedupKey{nodeStart, nodeEnd, cand.kind, name}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, diffscope.StructuralNode{
				Kind:      cand.kind,
				Name:      name,
				StartByte: nodeStart,
				EndByte:   nodeEnd,
				StartLine: int(cand.node.StartPoint().Row) + 1,
				EndLine:   int(cand.node.EndPoint().Row) + 1,
				IsPublic:  lang.IsPublic(cand.node, ast.Source),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartByte != out[j].StartByte {
			return out[i].StartByte < out[j].StartByte
		}
		return out[i].EndByte < out[j].EndByte
	})
	return out, nil
}

type candidate struct {
	node *sitter.Node
	kind diffscope.NodeKind
}

// collectCandidates runs the structural query once and gathers every
// captured node with the kind its capture name declares.
func collectCandidates(query *sitter.Query, ast *SourceAST) []candidate {
	qc := sitter.NewQueryCursor()
	qc.Exec(query, ast.Tree.RootNode())

	var candidates []candidate
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			candidates = append(candidates, candidate{
				node: c.Node,
				kind: diffscope.NodeKind(query.CaptureNameForId(c.Index)),
			})
		}
	}
	return candidates
}

// hunkByteRange translates a 1-based inclusive line range into a half-open
// byte range. The third return is false when the range starts at or beyond
// end of file.
func hunkByteRange(source []byte, lr diffscope.LineRange) (start, end int, ok bool) {
	startLine := lr.Start
	if startLine < 1 {
		startLine = 1
	}
	start = byteOffsetAfterLines(source, startLine-1)
	if start >= len(source) {
		return 0, 0, false
	}
	end = byteOffsetAfterLines(source, startLine-1+lr.Count)
	return start, end, true
}

// byteOffsetAfterLines returns the byte offset just past the nth newline,
// or len(source) when the file has fewer lines.
func byteOffsetAfterLines(source []byte, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i, b := range source {
		if b == '\n' {
			count++
			if count == n {
				return i + 1
			}
		}
	}
	return len(source)
}
