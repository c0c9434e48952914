package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scaffold builds:
//
//	root/
//	├── docs/
//	│   └── readme.md
//	├── work/
//	│   ├── deep/
//	│   │   └── nested.txt
//	│   └── a.txt
//	├── .hidden
//	└── b.txt
func scaffold(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "work", "deep"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	for _, name := range []string{
		"b.txt", ".hidden",
		filepath.Join("docs", "readme.md"),
		filepath.Join("work", "a.txt"),
		filepath.Join("work", "deep", "nested.txt"),
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}
	return root
}

func TestRender_FullTree(t *testing.T) {
	out, err := Render(scaffold(t), Options{})
	require.NoError(t, err)

	want := `root/
├── docs/
│   └── readme.md
├── work/
│   ├── deep/
│   │   └── nested.txt
│   └── a.txt
└── b.txt
`
	assert.Equal(t, want, out)
}

func TestRender_ShowHidden(t *testing.T) {
	out, err := Render(scaffold(t), Options{ShowHidden: true})
	require.NoError(t, err)
	assert.Contains(t, out, ".hidden")
}

func TestRender_HiddenExcludedByDefault(t *testing.T) {
	out, err := Render(scaffold(t), Options{})
	require.NoError(t, err)
	assert.NotContains(t, out, ".hidden")
}

func TestRender_MaxDepth(t *testing.T) {
	out, err := Render(scaffold(t), Options{MaxDepth: 1})
	require.NoError(t, err)

	want := `root/
├── docs/
├── work/
└── b.txt
`
	assert.Equal(t, want, out)
}

func TestRender_MissingDirectory(t *testing.T) {
	_, err := Render(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.ErrorContains(t, err, "directory not found")
}

func TestRender_FileNotDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := Render(path, Options{})
	assert.ErrorContains(t, err, "not a directory")
}

func TestWriteFile(t *testing.T) {
	root := scaffold(t)
	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteFile(root, out, Options{}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "root/")
	assert.Contains(t, string(data), "└── b.txt")
}

func TestDefaultOutputName(t *testing.T) {
	assert.Equal(t, "photos_tree.txt", DefaultOutputName("/some/path/photos"))
	assert.Equal(t, "photos_tree.txt", DefaultOutputName("photos/"))
}

func TestRender_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	out, err := Render(root, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "[Permission Denied]")
}
