package treesitter

import (
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Compile-time interface verification.
var _ Extractor = (*GoExtractor)(nil)

// GoExtractor extracts structural declarations from Go source.
type GoExtractor struct{}

// NewGoExtractor creates the Go language extractor.
func NewGoExtractor() *GoExtractor {
	return &GoExtractor{}
}

// ID implements Extractor.
func (e *GoExtractor) ID() string { return "go" }

// Extensions implements Extractor.
func (e *GoExtractor) Extensions() []string { return []string{".go"} }

// Language implements Extractor.
func (e *GoExtractor) Language() *sitter.Language { return golang.GetLanguage() }

// Query implements Extractor.
func (e *GoExtractor) Query() string {
	return `
(function_declaration) @function
(method_declaration) @method
(type_declaration) @type
(const_declaration) @const
(var_declaration) @var
(package_clause) @package
(import_declaration) @import
`
}

// Name implements Extractor.
func (e *GoExtractor) Name(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "type_declaration", "const_declaration", "var_declaration":
		// The name lives on the first spec inside the declaration.
		if node.NamedChildCount() == 0 {
			return PlaceholderName
		}
		return nameByField(node.NamedChild(0), source)
	case "package_clause", "import_declaration":
		if node.NamedChildCount() == 0 {
			return PlaceholderName
		}
		return node.NamedChild(0).Content(source)
	default:
		return nameByField(node, source)
	}
}

// IsPublic implements Extractor. Go visibility is purely lexical: an
// identifier is exported iff its first rune is upper case.
func (e *GoExtractor) IsPublic(node *sitter.Node, source []byte) bool {
	name := e.Name(node, source)
	if name == PlaceholderName || name == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
