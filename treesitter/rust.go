package treesitter

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Compile-time interface verification.
var _ Extractor = (*RustExtractor)(nil)

// RustExtractor extracts structural declarations from Rust source.
type RustExtractor struct{}

// NewRustExtractor creates the Rust language extractor.
func NewRustExtractor() *RustExtractor {
	return &RustExtractor{}
}

// ID implements Extractor.
func (e *RustExtractor) ID() string { return "rust" }

// Extensions implements Extractor.
func (e *RustExtractor) Extensions() []string { return []string{".rs"} }

// Language implements Extractor.
func (e *RustExtractor) Language() *sitter.Language { return rust.GetLanguage() }

// Query implements Extractor.
func (e *RustExtractor) Query() string {
	return `
(function_item) @function
(struct_item) @struct
(enum_item) @enum
(trait_item) @trait
(impl_item) @impl
(mod_item) @module
(const_item) @const
(static_item) @static
(type_item) @type
(macro_definition) @macro
(use_declaration) @import
`
}

// Name implements Extractor. Most Rust items carry a "name" field; impl
// blocks are named after the type (and trait) they implement, and use
// declarations after the imported path.
func (e *RustExtractor) Name(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "impl_item":
		typeNode := node.ChildByFieldName("type")
		traitNode := node.ChildByFieldName("trait")
		switch {
		case traitNode != nil && typeNode != nil:
			return fmt.Sprintf("impl %s for %s", traitNode.Content(source), typeNode.Content(source))
		case typeNode != nil:
			return fmt.Sprintf("impl %s", typeNode.Content(source))
		default:
			return PlaceholderName
		}
	case "use_declaration":
		text := strings.TrimPrefix(node.Content(source), "use ")
		return strings.TrimSuffix(text, ";")
	default:
		return nameByField(node, source)
	}
}

// IsPublic implements Extractor. A Rust item is public iff it carries an
// explicit visibility modifier starting with "pub"; the default is private.
func (e *RustExtractor) IsPublic(node *sitter.Node, source []byte) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "visibility_modifier" {
			return strings.HasPrefix(child.Content(source), "pub")
		}
	}
	return false
}
