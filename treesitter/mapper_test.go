package treesitter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/treesitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseFixture writes source to a temp dir and returns its parsed tree.
func parseFixture(t *testing.T, registry *treesitter.Registry, name, source string) *treesitter.SourceAST {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644))
	cache := treesitter.NewCache(dir, registry, nil)
	ast, err := cache.GetOrParse(context.Background(), name)
	require.NoError(t, err)
	return ast
}

const twoFuncsGo = `package main

func alpha() int {
	return 1
}

func beta() int {
	return 2
}
`

func hunk(start, count int) diffscope.DiffHunk {
	return diffscope.DiffHunk{NewRange: diffscope.LineRange{Start: start, Count: count}}
}

func TestRegistry_AffectedNodes(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t)

	t.Run("reports only nodes overlapping the hunk", func(t *testing.T) {
		t.Parallel()

		ast := parseFixture(t, registry, "main.go", twoFuncsGo)

		nodes, err := registry.AffectedNodes(ast, []diffscope.DiffHunk{hunk(7, 3)}, nil)

		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, diffscope.KindFunction, nodes[0].Kind)
		assert.Equal(t, "beta", nodes[0].Name)
		assert.Equal(t, 7, nodes[0].StartLine)
		assert.Equal(t, 9, nodes[0].EndLine)
	})

	t.Run("treats touching ranges as non-overlapping", func(t *testing.T) {
		t.Parallel()

		ast := parseFixture(t, registry, "main.go", twoFuncsGo)

		// Line 6 is the blank line between alpha and beta: it ends exactly
		// where beta starts and starts exactly where alpha ends.
		nodes, err := registry.AffectedNodes(ast, []diffscope.DiffHunk{hunk(6, 1)}, nil)

		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("deduplicates nodes touched by several hunks", func(t *testing.T) {
		t.Parallel()

		ast := parseFixture(t, registry, "main.go", twoFuncsGo)

		nodes, err := registry.AffectedNodes(ast, []diffscope.DiffHunk{hunk(7, 1), hunk(8, 1)}, nil)

		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "beta", nodes[0].Name)
	})

	t.Run("skips hunks starting beyond end of file", func(t *testing.T) {
		t.Parallel()

		ast := parseFixture(t, registry, "main.go", twoFuncsGo)

		nodes, err := registry.AffectedNodes(ast, []diffscope.DiffHunk{hunk(100, 3)}, nil)

		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("zero-count hunks report no nodes", func(t *testing.T) {
		t.Parallel()

		ast := parseFixture(t, registry, "main.go", twoFuncsGo)

		nodes, err := registry.AffectedNodes(ast, []diffscope.DiffHunk{hunk(3, 0)}, nil)

		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("orders nodes by byte range", func(t *testing.T) {
		t.Parallel()

		ast := parseFixture(t, registry, "main.go", twoFuncsGo)

		nodes, err := registry.AffectedNodes(ast, []diffscope.DiffHunk{hunk(1, 9)}, nil)

		require.NoError(t, err)
		require.Len(t, nodes, 3)
		assert.Equal(t, diffscope.KindPackage, nodes[0].Kind)
		assert.Equal(t, "alpha", nodes[1].Name)
		assert.Equal(t, "beta", nodes[2].Name)
		for i := 1; i < len(nodes); i++ {
			assert.LessOrEqual(t, nodes[i-1].StartByte, nodes[i].StartByte)
		}
	})

	t.Run("errors when the language has no compiled query", func(t *testing.T) {
		t.Parallel()

		ast := parseFixture(t, registry, "main.go", twoFuncsGo)
		ast.Language = "cobol"

		_, err := registry.AffectedNodes(ast, []diffscope.DiffHunk{hunk(1, 1)}, nil)

		assert.Error(t, err)
	})
}
