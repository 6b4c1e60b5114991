// Package mock provides function-field test doubles for diffscope interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var (
	_ diffscope.Parser    = (*Parser)(nil)
	_ diffscope.Analyzer  = (*Analyzer)(nil)
	_ diffscope.Explainer = (*Explainer)(nil)
)

// Parser is a mock implementation of diffscope.Parser.
type Parser struct {
	ParseFn func(text string) (*diffscope.DiffSet, error)
}

// Parse delegates to ParseFn.
func (p *Parser) Parse(text string) (*diffscope.DiffSet, error) {
	return p.ParseFn(text)
}

// Analyzer is a mock implementation of diffscope.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, diffText string) (*diffscope.DiffAnalysis, error)
}

// Analyze delegates to AnalyzeFn.
func (a *Analyzer) Analyze(ctx context.Context, diffText string) (*diffscope.DiffAnalysis, error) {
	return a.AnalyzeFn(ctx, diffText)
}

// Explainer is a mock implementation of diffscope.Explainer.
type Explainer struct {
	CommitMessageFn func(ctx context.Context, analysis *diffscope.DiffAnalysis) (string, error)
}

// CommitMessage delegates to CommitMessageFn.
func (e *Explainer) CommitMessage(ctx context.Context, analysis *diffscope.DiffAnalysis) (string, error) {
	return e.CommitMessageFn(ctx, analysis)
}
