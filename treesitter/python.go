package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Compile-time interface verification.
var _ Extractor = (*PythonExtractor)(nil)

// PythonExtractor extracts structural declarations from Python source.
type PythonExtractor struct{}

// NewPythonExtractor creates the Python language extractor.
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{}
}

// ID implements Extractor.
func (e *PythonExtractor) ID() string { return "python" }

// Extensions implements Extractor.
func (e *PythonExtractor) Extensions() []string { return []string{".py"} }

// Language implements Extractor.
func (e *PythonExtractor) Language() *sitter.Language { return python.GetLanguage() }

// Query implements Extractor.
func (e *PythonExtractor) Query() string {
	return `
(function_definition) @function
(class_definition) @class
(import_statement) @import
(import_from_statement) @import
`
}

// Name implements Extractor.
func (e *PythonExtractor) Name(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "import_statement", "import_from_statement":
		return node.Content(source)
	default:
		return nameByField(node, source)
	}
}

// IsPublic implements Extractor. Python has no enforced visibility; the
// convention is that a leading underscore marks a name as private.
func (e *PythonExtractor) IsPublic(node *sitter.Node, source []byte) bool {
	name := e.Name(node, source)
	if name == PlaceholderName {
		return false
	}
	return !strings.HasPrefix(name, "_")
}
