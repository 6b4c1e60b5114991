package treesitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/diffscope"
)

// changeStats carries the counters the pattern and scope heuristics run on.
type changeStats struct {
	nodes      int
	functions  int
	types      int
	methods    int
	interfaces int
	other      int

	additions int
	deletions int

	kinds     map[diffscope.ChangeKind]int
	languages map[string]int
}

// aggregate combines per-file analyses into the terminal DiffAnalysis.
func (a *Analyzer) aggregate(ds *diffscope.DiffSet, analyses []diffscope.FileAnalysis) *diffscope.DiffAnalysis {
	stats := collectStats(ds, analyses)
	pattern := classifyPattern(ds, analyses, stats)
	scope := classifyScope(stats)

	return &diffscope.DiffAnalysis{
		FileAnalyses:   analyses,
		OverallSummary: overallSummary(stats, pattern, scope),
		Pattern:        pattern,
		Scope:          scope,
	}
}

func collectStats(ds *diffscope.DiffSet, analyses []diffscope.FileAnalysis) changeStats {
	stats := changeStats{
		kinds:     make(map[diffscope.ChangeKind]int),
		languages: make(map[string]int),
	}

	for _, fa := range analyses {
		stats.kinds[fa.Kind]++
		if fa.Language != "unknown" {
			stats.languages[fa.Language]++
		}
		for _, n := range fa.AffectedNodes {
			stats.nodes++
			switch n.Kind {
			case diffscope.KindFunction:
				stats.functions++
			case diffscope.KindClass, diffscope.KindStruct, diffscope.KindEnum,
				diffscope.KindInterface, diffscope.KindType:
				stats.types++
			case diffscope.KindMethod, diffscope.KindConstructor:
				stats.methods++
			case diffscope.KindTrait:
				stats.interfaces++
			default:
				stats.other++
			}
		}
	}

	for _, f := range ds.Files {
		for _, h := range f.Hunks {
			stats.additions += len(h.Additions())
			stats.deletions += len(h.Deletions())
		}
	}
	return stats
}

// classifyPattern derives a coarse change label from the aggregated counts.
// The rules run most-specific first: language-dominant signatures, then file
// path conventions, then keyword scans over added lines, then shape counts.
func classifyPattern(ds *diffscope.DiffSet, analyses []diffscope.FileAnalysis, stats changeStats) diffscope.ChangePattern {
	rust := stats.languages["rust"]
	java := stats.languages["java"]

	if rust > 0 && rust > java {
		if anyNodeKind(analyses, diffscope.KindTrait, diffscope.KindImpl) {
			return diffscope.LanguagePattern("rust", "trait-impl")
		}
		if anyNodeKind(analyses, diffscope.KindMacro) {
			return diffscope.LanguagePattern("rust", "macro")
		}
	}
	if java > 0 && java > rust {
		if anyNodeKind(analyses, diffscope.KindInterface) {
			return diffscope.LanguagePattern("java", "interface-change")
		}
	}

	for _, fa := range analyses {
		p := strings.ToLower(fa.Path)
		if strings.Contains(p, "config") ||
			strings.HasSuffix(p, ".properties") ||
			strings.HasSuffix(p, ".yml") ||
			strings.HasSuffix(p, ".yaml") ||
			strings.HasSuffix(p, ".toml") {
			return diffscope.PatternConfiguration
		}
	}

	for _, fa := range analyses {
		if strings.Contains(strings.ToLower(fa.Path), "test") {
			return diffscope.PatternBugFix
		}
	}

	if addedLinesContain(ds, "fix", "bug", "issue", "error", "crash", "exception") {
		return diffscope.PatternBugFix
	}
	if addedLinesContain(ds, "refactor", "clean", "improve", "simplify", "restructure") {
		return diffscope.PatternRefactor
	}

	if stats.types > 0 || stats.interfaces > 0 {
		if stats.methods > 0 {
			return diffscope.PatternBehaviorChange
		}
		return diffscope.PatternModelChange
	}

	if stats.functions > 0 && stats.additions > 0 && stats.deletions > 0 &&
		stats.additions > stats.deletions*2 {
		return diffscope.PatternFeature
	}

	return diffscope.PatternMixed
}

func classifyScope(stats changeStats) diffscope.ChangeScope {
	if stats.interfaces > 2 || stats.types > 5 {
		return diffscope.ScopeMajor
	}
	if stats.nodes > 20 || stats.additions+stats.deletions > 50 || stats.methods > 3 {
		return diffscope.ScopeModerate
	}
	return diffscope.ScopeMinor
}

func anyNodeKind(analyses []diffscope.FileAnalysis, kinds ...diffscope.NodeKind) bool {
	for _, fa := range analyses {
		for _, n := range fa.AffectedNodes {
			for _, k := range kinds {
				if n.Kind == k {
					return true
				}
			}
		}
	}
	return false
}

func addedLinesContain(ds *diffscope.DiffSet, keywords ...string) bool {
	for _, f := range ds.Files {
		for _, h := range f.Hunks {
			for _, line := range h.Additions() {
				l := strings.ToLower(line)
				for _, kw := range keywords {
					if strings.Contains(l, kw) {
						return true
					}
				}
			}
		}
	}
	return false
}

func overallSummary(stats changeStats, pattern diffscope.ChangePattern, scope diffscope.ChangeScope) string {
	var b strings.Builder

	var kindParts []string
	for _, kind := range []diffscope.ChangeKind{diffscope.Modified, diffscope.Added, diffscope.Deleted, diffscope.Renamed} {
		if n := stats.kinds[kind]; n > 0 {
			kindParts = append(kindParts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	if len(kindParts) == 0 {
		b.WriteString("no files changed")
	} else {
		fmt.Fprintf(&b, "files: %s", strings.Join(kindParts, ", "))
	}
	b.WriteString("; ")

	if len(stats.languages) == 0 {
		b.WriteString("no supported languages detected")
	} else {
		langs := make([]string, 0, len(stats.languages))
		for lang := range stats.languages {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		parts := make([]string, 0, len(langs))
		for _, lang := range langs {
			parts = append(parts, fmt.Sprintf("%s (%d files)", lang, stats.languages[lang]))
		}
		fmt.Fprintf(&b, "languages: %s", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&b, "; +%d/-%d lines across %d affected declarations", stats.additions, stats.deletions, stats.nodes)
	fmt.Fprintf(&b, " (%d functions, %d types, %d methods, %d interfaces, %d other)",
		stats.functions, stats.types, stats.methods, stats.interfaces, stats.other)
	fmt.Fprintf(&b, "; pattern: %s; scope: %s", pattern, scope)
	return b.String()
}
