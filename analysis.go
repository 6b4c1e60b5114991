package diffscope

// NodeKind classifies a structural element selected by a language extractor.
type NodeKind string

// Node kinds shared across languages. Extractors may report additional
// language-specific kinds (e.g. "trait", "impl", "macro").
const (
	KindFunction    NodeKind = "function"
	KindMethod      NodeKind = "method"
	KindConstructor NodeKind = "constructor"
	KindClass       NodeKind = "class"
	KindStruct      NodeKind = "struct"
	KindEnum        NodeKind = "enum"
	KindInterface   NodeKind = "interface"
	KindTrait       NodeKind = "trait"
	KindImpl        NodeKind = "impl"
	KindType        NodeKind = "type"
	KindField       NodeKind = "field"
	KindConst       NodeKind = "const"
	KindStatic      NodeKind = "static"
	KindVar         NodeKind = "var"
	KindModule      NodeKind = "module"
	KindPackage     NodeKind = "package"
	KindImport      NodeKind = "import"
	KindMacro       NodeKind = "macro"
)

// StructuralNode is a syntactic element whose byte range overlaps a diff hunk.
type StructuralNode struct {
	Kind      NodeKind `json:"kind"`
	Name      string   `json:"name"`
	StartByte int      `json:"start_byte"`
	EndByte   int      `json:"end_byte"`
	StartLine int      `json:"start_line"` // 1-based
	EndLine   int      `json:"end_line"`   // 1-based, inclusive
	IsPublic  bool     `json:"is_public"`
}

// FileAnalysis is the per-file result of structural diff analysis. A file
// that could not be analyzed carries an explanatory Summary and no nodes.
type FileAnalysis struct {
	Path          string           `json:"path"`
	Language      string           `json:"language"`
	Kind          ChangeKind       `json:"-"`
	KindLabel     string           `json:"change_kind"`
	AffectedNodes []StructuralNode `json:"affected_nodes"`
	Summary       string           `json:"summary"`
}

// ChangePattern is a coarse, heuristic classification of a diff's nature.
type ChangePattern string

// Change patterns.
const (
	PatternFeature        ChangePattern = "feature"
	PatternBugFix         ChangePattern = "bugfix"
	PatternRefactor       ChangePattern = "refactor"
	PatternModelChange    ChangePattern = "model-change"
	PatternBehaviorChange ChangePattern = "behavior-change"
	PatternConfiguration  ChangePattern = "configuration"
	PatternMixed          ChangePattern = "mixed"
)

// LanguagePattern returns a language-specific change pattern label, e.g.
// LanguagePattern("rust", "trait-impl") == "rust:trait-impl".
func LanguagePattern(language, variant string) ChangePattern {
	return ChangePattern(language + ":" + variant)
}

// ChangeScope is a coarse estimate of a diff's magnitude.
type ChangeScope string

// Change scopes.
const (
	ScopeMinor    ChangeScope = "minor"
	ScopeModerate ChangeScope = "moderate"
	ScopeMajor    ChangeScope = "major"
)

// DiffAnalysis is the terminal artifact of the analysis pipeline, consumed
// by prompt and report generation.
type DiffAnalysis struct {
	FileAnalyses   []FileAnalysis `json:"file_analyses"`
	OverallSummary string         `json:"overall_summary"`
	Pattern        ChangePattern  `json:"change_pattern"`
	Scope          ChangeScope    `json:"change_scope"`
}

// AffectedNodeCount returns the total number of affected nodes across files.
func (a *DiffAnalysis) AffectedNodeCount() int {
	n := 0
	for _, fa := range a.FileAnalyses {
		n += len(fa.AffectedNodes)
	}
	return n
}
