package jsonl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads valid JSONL file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "analyses.jsonl")
		content := `{"file_analyses":[{"path":"a.go","language":"go","change_kind":"modified","affected_nodes":[],"summary":""}],"overall_summary":"first","change_pattern":"refactor","change_scope":"minor"}
{"file_analyses":[],"overall_summary":"second","change_pattern":"feature","change_scope":"major"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		loader := jsonl.NewLoader()
		analyses, err := loader.Load(path)

		require.NoError(t, err)
		require.Len(t, analyses, 2)
		assert.Equal(t, "first", analyses[0].OverallSummary)
		assert.Equal(t, diffscope.PatternRefactor, analyses[0].Pattern)
		assert.Equal(t, "a.go", analyses[0].FileAnalyses[0].Path)
		assert.Equal(t, "second", analyses[1].OverallSummary)
		assert.Equal(t, diffscope.ScopeMajor, analyses[1].Scope)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		t.Parallel()

		loader := jsonl.NewLoader()
		_, err := loader.Load("/nonexistent/path.jsonl")

		assert.Error(t, err)
	})

	t.Run("returns error with line number for malformed JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "bad.jsonl")
		content := `{"overall_summary":"ok"}
not valid json
{"overall_summary":"also ok"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		loader := jsonl.NewLoader()
		_, err := loader.Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "sparse.jsonl")
		content := "\n{\"overall_summary\":\"only\"}\n\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		loader := jsonl.NewLoader()
		analyses, err := loader.Load(path)

		require.NoError(t, err)
		require.Len(t, analyses, 1)
		assert.Equal(t, "only", analyses[0].OverallSummary)
	})
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := jsonl.NewWriter(&buf)

	first := &diffscope.DiffAnalysis{
		OverallSummary: "first",
		Pattern:        diffscope.PatternBugFix,
		Scope:          diffscope.ScopeMinor,
		FileAnalyses: []diffscope.FileAnalysis{
			{Path: "src/main.rs", Language: "rust", KindLabel: "modified",
				AffectedNodes: []diffscope.StructuralNode{
					{Kind: diffscope.KindFunction, Name: "main", StartLine: 1, EndLine: 3},
				}},
		},
	}
	second := &diffscope.DiffAnalysis{OverallSummary: "second", Pattern: diffscope.PatternMixed, Scope: diffscope.ScopeModerate}

	require.NoError(t, writer.Write(first))
	require.NoError(t, writer.Write(second))

	loader := jsonl.NewLoader()
	analyses, err := loader.Read(&buf)

	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Equal(t, *first, analyses[0])
	assert.Equal(t, *second, analyses[1])
}
