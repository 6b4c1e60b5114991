package diffscope

import "context"

// Analyzer produces a structural analysis of a diff. Per-file failures are
// reported inside the returned DiffAnalysis, never as an error: the report
// contains an entry for every file mentioned in the diff.
type Analyzer interface {
	Analyze(ctx context.Context, diffText string) (*DiffAnalysis, error)
}
