package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Compile-time interface verification.
var _ Extractor = (*JavaExtractor)(nil)

// JavaExtractor extracts structural declarations from Java source.
type JavaExtractor struct{}

// NewJavaExtractor creates the Java language extractor.
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{}
}

// ID implements Extractor.
func (e *JavaExtractor) ID() string { return "java" }

// Extensions implements Extractor.
func (e *JavaExtractor) Extensions() []string { return []string{".java"} }

// Language implements Extractor.
func (e *JavaExtractor) Language() *sitter.Language { return java.GetLanguage() }

// Query implements Extractor.
func (e *JavaExtractor) Query() string {
	return `
(class_declaration) @class
(interface_declaration) @interface
(enum_declaration) @enum
(annotation_type_declaration) @type
(method_declaration) @method
(constructor_declaration) @constructor
(field_declaration) @field
(package_declaration) @package
(import_declaration) @import
`
}

// Name implements Extractor.
func (e *JavaExtractor) Name(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "field_declaration":
		// The name lives on the variable declarator, not the declaration.
		decl := node.ChildByFieldName("declarator")
		if decl == nil {
			return PlaceholderName
		}
		return nameByField(decl, source)
	case "package_declaration", "import_declaration":
		if node.NamedChildCount() == 0 {
			return PlaceholderName
		}
		return node.NamedChild(0).Content(source)
	default:
		return nameByField(node, source)
	}
}

// IsPublic implements Extractor. A node with a modifier list is public iff
// the list names "public"; explicit "private" or "protected" short-circuits
// to not-public, and a bare list means package-private. Without a modifier
// list, an interface method with no private/static modifier is implicitly
// public, and a top-level type is package-private. Best effort: nested and
// default-method corner cases follow these rules rather than the JLS.
func (e *JavaExtractor) IsPublic(node *sitter.Node, source []byte) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "modifiers" {
			continue
		}
		text := child.Content(source)
		if strings.Contains(text, "public") {
			return true
		}
		return false
	}

	// Interface methods are implicitly public unless private or static.
	if node.Type() == "method_declaration" {
		if parent := node.Parent(); parent != nil && parent.Type() == "interface_body" {
			text := node.Content(source)
			return !strings.Contains(text, "private") && !strings.Contains(text, "static")
		}
	}

	// Top-level types without modifiers are package-private.
	return false
}
