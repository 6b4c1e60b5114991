package treesitter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/gitdiff"
	"github.com/fwojciec/diffscope/unidiff"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ diffscope.Analyzer = (*Analyzer)(nil)

// Analyzer drives the structural analysis pipeline: diff parsing, tree
// caching, hunk-to-node mapping and aggregation into a DiffAnalysis.
//
// Per-file failures (missing file, unsupported language, parse failure) are
// converted into degraded FileAnalysis entries; they never abort the run.
type Analyzer struct {
	root        string
	parser      diffscope.Parser
	registry    *Registry
	cache       *Cache
	logger      *slog.Logger
	concurrency int
	extractors  []Extractor
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithParser replaces the default strict-then-permissive parser chain.
func WithParser(p diffscope.Parser) Option {
	return func(a *Analyzer) { a.parser = p }
}

// WithLogger sets the logger for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithConcurrency bounds parallel per-file analysis. Values below 2 keep
// the pipeline sequential.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) { a.concurrency = n }
}

// WithExtractors replaces the default language set.
func WithExtractors(extractors ...Extractor) Option {
	return func(a *Analyzer) { a.extractors = extractors }
}

// New creates an Analyzer rooted at the given working tree directory. A
// structural query that fails to compile aborts construction.
func New(root string, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		root:        root,
		logger:      slog.Default(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.parser == nil {
		a.parser = diffscope.MultiParser{gitdiff.NewParser(), unidiff.NewParser()}
	}
	if a.extractors == nil {
		a.extractors = DefaultExtractors()
	}
	registry, err := NewRegistry(a.extractors...)
	if err != nil {
		return nil, err
	}
	a.registry = registry
	a.cache = NewCache(root, registry, a.logger)
	return a, nil
}

// Cache exposes the analyzer's syntax tree cache.
func (a *Analyzer) Cache() *Cache {
	return a.cache
}

// Analyze implements diffscope.Analyzer.
func (a *Analyzer) Analyze(ctx context.Context, diffText string) (*diffscope.DiffAnalysis, error) {
	ds, err := a.parser.Parse(diffText)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	analyses := make([]diffscope.FileAnalysis, len(ds.Files))
	if a.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.concurrency)
		for i, f := range ds.Files {
			g.Go(func() error {
				analyses[i] = a.analyzeFile(gctx, f)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, f := range ds.Files {
			analyses[i] = a.analyzeFile(ctx, f)
		}
	}

	return a.aggregate(ds, analyses), nil
}

// analyzeFile produces the FileAnalysis for a single diff entry. It never
// fails: errors degrade the entry to an explanatory summary with no nodes.
func (a *Analyzer) analyzeFile(ctx context.Context, f diffscope.FileDiff) diffscope.FileAnalysis {
	fa := diffscope.FileAnalysis{
		Path:      f.Path,
		Language:  "unknown",
		Kind:      f.Kind,
		KindLabel: f.Kind.String(),
	}

	switch f.Kind {
	case diffscope.Deleted:
		fa.Summary = "file was deleted; no tree available to inspect"
		return fa
	case diffscope.Renamed:
		fa.Summary = fmt.Sprintf("file was renamed from %s; no tree available to inspect", f.OldPath)
		return fa
	}

	if f.IsBinary {
		fa.Summary = "binary file; no structural analysis"
		return fa
	}

	ast, err := a.cache.GetOrParse(ctx, f.Path)
	if err != nil {
		a.logger.Warn("degrading file analysis", "path", f.Path, "reason", err)
		fa.Summary = fmt.Sprintf("could not analyze: %s", err)
		return fa
	}
	fa.Language = ast.Language

	nodes, err := a.registry.AffectedNodes(ast, f.Hunks, a.logger)
	if err != nil {
		a.logger.Warn("degrading file analysis", "path", f.Path, "reason", err)
		fa.Summary = fmt.Sprintf("could not analyze: %s", err)
		return fa
	}
	fa.AffectedNodes = nodes
	fa.Summary = fileSummary(f, ast.Language, nodes)
	return fa
}

// fileSummary describes what the change touched in one line.
func fileSummary(f diffscope.FileDiff, language string, nodes []diffscope.StructuralNode) string {
	if len(nodes) == 0 {
		return fmt.Sprintf("%s %s file; no structural changes detected", f.Kind, language)
	}

	counts := make(map[diffscope.NodeKind]int)
	public := 0
	for _, n := range nodes {
		counts[n.Kind]++
		if n.IsPublic {
			public++
		}
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[diffscope.NodeKind(kind)], kind))
	}

	s := fmt.Sprintf("%s %s file; affects %s", f.Kind, language, strings.Join(parts, ", "))
	if public > 0 {
		s += fmt.Sprintf(" (%d public)", public)
	}
	return s
}
