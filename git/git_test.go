package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/diffscope/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a git repository with one committed file and returns its
// path. Tests are skipped when git is not installed.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	run("add", ".")
	run("commit", "-m", "initial")
	return dir
}

func TestClient_Diff(t *testing.T) {
	t.Parallel()

	t.Run("returns empty output for a clean tree", func(t *testing.T) {
		t.Parallel()

		client := git.NewClient(initRepo(t))
		out, err := client.Diff(context.Background())

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("captures unstaged changes", func(t *testing.T) {
		t.Parallel()

		dir := initRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))

		client := git.NewClient(dir)
		out, err := client.Diff(context.Background())

		require.NoError(t, err)
		assert.Contains(t, out, "diff --git a/main.go b/main.go")
		assert.Contains(t, out, "+func main() {}")
	})

	t.Run("staged diff sees only the index", func(t *testing.T) {
		t.Parallel()

		dir := initRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.go"), []byte("package main\n"), 0o644))
		cmd := exec.Command("git", "add", "new.go")
		cmd.Dir = dir
		require.NoError(t, cmd.Run())

		client := git.NewClient(dir)

		staged, err := client.StagedDiff(context.Background())
		require.NoError(t, err)
		assert.Contains(t, staged, "new.go")

		unstaged, err := client.Diff(context.Background())
		require.NoError(t, err)
		assert.Empty(t, unstaged)
	})
}

func TestClient_Root(t *testing.T) {
	t.Parallel()

	dir := initRepo(t)
	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	client := git.NewClient(sub)
	root, err := client.Root(context.Background())

	require.NoError(t, err)
	// Resolve symlinks so the comparison survives /tmp -> /private/tmp.
	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestClient_Version(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	version, err := git.NewClient(t.TempDir()).Version(context.Background())

	require.NoError(t, err)
	assert.Contains(t, version, "git version")
}

func TestClient_IsRepository(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	assert.True(t, git.NewClient(initRepo(t)).IsRepository(context.Background()))
	assert.False(t, git.NewClient(t.TempDir()).IsRepository(context.Background()))
}

func TestClient_ErrorsIncludeStderr(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	client := git.NewClient(t.TempDir())
	_, err := client.Diff(context.Background())

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "git diff:"), err.Error())
}
