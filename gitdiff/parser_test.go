package gitdiff_test

import (
	"testing"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/gitdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_ModifiedFile(t *testing.T) {
	t.Parallel()

	input := `diff --git a/src/main.rs b/src/main.rs
index 1234567..89abcde 100644
--- a/src/main.rs
+++ b/src/main.rs
@@ -1,3 +1,3 @@
 fn main() {
-    println!("Hello, world!");
+    println!("Hello!");
`

	ds, err := gitdiff.NewParser().Parse(input)
	require.NoError(t, err)
	require.Len(t, ds.Files, 1)

	f := ds.Files[0]
	assert.Equal(t, "src/main.rs", f.Path)
	assert.Equal(t, diffscope.Modified, f.Kind)
	require.Len(t, f.Hunks, 1)
	assert.Equal(t, diffscope.LineRange{Start: 1, Count: 3}, f.Hunks[0].NewRange)
	require.Len(t, f.Hunks[0].Lines, 3)
	assert.Equal(t, " fn main() {", f.Hunks[0].Lines[0])
	assert.Equal(t, `-    println!("Hello, world!");`, f.Hunks[0].Lines[1])
	assert.Equal(t, `+    println!("Hello!");`, f.Hunks[0].Lines[2])
}

func TestParser_Parse_NewAndDeleted(t *testing.T) {
	t.Parallel()

	input := `diff --git a/new.go b/new.go
new file mode 100644
index 0000000..9f4c9ed
--- /dev/null
+++ b/new.go
@@ -0,0 +1 @@
+package new
diff --git a/old.go b/old.go
deleted file mode 100644
index 9f4c9ed..0000000
--- a/old.go
+++ /dev/null
@@ -1 +0,0 @@
-package old
`

	ds, err := gitdiff.NewParser().Parse(input)
	require.NoError(t, err)
	require.Len(t, ds.Files, 2)

	assert.Equal(t, diffscope.Added, ds.Files[0].Kind)
	assert.Equal(t, "new.go", ds.Files[0].Path)
	assert.Empty(t, ds.Files[0].OldPath)

	assert.Equal(t, diffscope.Deleted, ds.Files[1].Kind)
	assert.Equal(t, "old.go", ds.Files[1].Path)
	assert.Equal(t, "old.go", ds.Files[1].OldPath)
}

func TestParser_Parse_Rename(t *testing.T) {
	t.Parallel()

	input := `diff --git a/pkg/a.go b/pkg/b.go
similarity index 100%
rename from pkg/a.go
rename to pkg/b.go
`

	ds, err := gitdiff.NewParser().Parse(input)
	require.NoError(t, err)
	require.Len(t, ds.Files, 1)
	assert.Equal(t, diffscope.Renamed, ds.Files[0].Kind)
	assert.Equal(t, "pkg/b.go", ds.Files[0].Path)
	assert.Equal(t, "pkg/a.go", ds.Files[0].OldPath)
	assert.Empty(t, ds.Files[0].Hunks)
}

func TestParser_Parse_MalformedInputFails(t *testing.T) {
	t.Parallel()

	input := `diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1,2 +1,2 @@
 only one line where two were promised
`

	_, err := gitdiff.NewParser().Parse(input)
	require.Error(t, err)
}
