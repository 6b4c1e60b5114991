package diffscope

import "context"

// Explainer turns a structural analysis into human-oriented text.
type Explainer interface {
	// CommitMessage proposes a commit message describing the analyzed change.
	CommitMessage(ctx context.Context, analysis *DiffAnalysis) (string, error)
}
