// Package treesitter implements structural diff analysis on top of
// tree-sitter: it caches parsed syntax trees per file, maps diff hunks onto
// the syntactic elements they touch, and aggregates per-file results into a
// language-aware change report.
package treesitter

import (
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffscope"
	sitter "github.com/smacker/go-tree-sitter"
)

// PlaceholderName is reported for matched nodes whose name sub-field is
// absent, so no change is silently dropped.
const PlaceholderName = "(anonymous)"

// Extractor supplies the per-language pieces of structural analysis: a
// grammar, a structural query whose capture names double as node kinds, a
// name rule, and a visibility rule.
//
// The set of extractors is closed and selected by file extension; the
// analyzer fails closed for extensions no extractor claims.
type Extractor interface {
	// ID is the language identifier, e.g. "rust".
	ID() string

	// Extensions lists the file extensions this language claims, with dots.
	Extensions() []string

	// Language returns the tree-sitter grammar.
	Language() *sitter.Language

	// Query returns the structural query pattern. Each capture name is the
	// diffscope.NodeKind reported for nodes it matches.
	Query() string

	// Name extracts a human-readable name for a matched node, or
	// PlaceholderName when the node has no usable name sub-field.
	Name(node *sitter.Node, source []byte) string

	// IsPublic reports whether a matched node is publicly visible under the
	// language's rules.
	IsPublic(node *sitter.Node, source []byte) bool
}

// language pairs an extractor with its compiled query.
type language struct {
	Extractor
	query *sitter.Query
}

// Registry holds the enabled languages keyed by file extension.
type Registry struct {
	byExt map[string]*language
	byID  map[string]*language
}

// NewRegistry compiles each extractor's structural query and indexes the
// extractors by extension. A query that fails to compile is a configuration
// error and aborts construction.
func NewRegistry(extractors ...Extractor) (*Registry, error) {
	r := &Registry{
		byExt: make(map[string]*language),
		byID:  make(map[string]*language),
	}
	for _, ex := range extractors {
		q, err := sitter.NewQuery([]byte(ex.Query()), ex.Language())
		if err != nil {
			return nil, &diffscope.QueryCompileError{Language: ex.ID(), Reason: err.Error()}
		}
		lang := &language{Extractor: ex, query: q}
		r.byID[ex.ID()] = lang
		for _, ext := range ex.Extensions() {
			r.byExt[strings.ToLower(ext)] = lang
		}
	}
	return r, nil
}

// DefaultExtractors returns every supported language.
func DefaultExtractors() []Extractor {
	return []Extractor{
		NewRustExtractor(),
		NewJavaExtractor(),
		NewGoExtractor(),
		NewPythonExtractor(),
	}
}

// forPath resolves the language for a file path by extension, failing closed
// for extensions outside the registry.
func (r *Registry) forPath(path string) (*language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := r.byExt[ext]
	if !ok {
		return nil, &diffscope.UnsupportedLanguageError{Ext: ext}
	}
	return lang, nil
}

// Supports reports whether the registry has a language for the given path.
func (r *Registry) Supports(path string) bool {
	_, err := r.forPath(path)
	return err == nil
}

// nameByField returns the text of the node's "name" field, the common case
// across grammars, or PlaceholderName when absent.
func nameByField(node *sitter.Node, source []byte) string {
	return fieldText(node, "name", source)
}

func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return PlaceholderName
	}
	return child.Content(source)
}
