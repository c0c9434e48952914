package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Lstat(path)
	return err == nil
}

func TestApply_MovesFilesIntoCategories(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-report.txt", "work-notes.md", "home-list.txt")

	plan, err := BuildPlan(dir, "-")
	require.NoError(t, err)

	res := Apply(plan, Options{})
	assert.Empty(t, res.Errors)
	assert.Equal(t, 3, res.Moved)
	assert.Equal(t, 2, res.DirCount)
	assert.True(t, exists(t, filepath.Join(dir, "work", "work-report.txt")))
	assert.True(t, exists(t, filepath.Join(dir, "home", "home-list.txt")))
	assert.False(t, exists(t, filepath.Join(dir, "work-report.txt")))
}

func TestApply_StripPrefix(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-report.txt", "plain.txt")

	plan, err := BuildPlan(dir, "-")
	require.NoError(t, err)

	res := Apply(plan, Options{StripPrefix: true})
	assert.Empty(t, res.Errors)
	assert.True(t, exists(t, filepath.Join(dir, "work", "report.txt")))
	// Synthetic categories keep names untouched.
	assert.True(t, exists(t, filepath.Join(dir, NoSeparator, "plain.txt")))
}

func TestApply_StripPrefixKeepsSyntheticCategoryNames(t *testing.T) {
	dir := t.TempDir()
	// "###" sanitizes to nothing, so the file lands in the unnamed category.
	// Its name keeps the separator segment so a scan-based reverse can
	// restore it without a manifest.
	mkfiles(t, dir, "###-doc.txt")

	plan, err := BuildPlan(dir, "-")
	require.NoError(t, err)

	res := Apply(plan, Options{StripPrefix: true})
	assert.Empty(t, res.Errors)
	assert.True(t, exists(t, filepath.Join(dir, UnnamedCategory, "###-doc.txt")))
	assert.False(t, exists(t, filepath.Join(dir, UnnamedCategory, "doc.txt")))
}

func TestApply_StripPrefixEmptyRemainder(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-")

	plan, err := BuildPlan(dir, "-")
	require.NoError(t, err)

	res := Apply(plan, Options{StripPrefix: true})
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "empty after prefix removal")
	// File still moved, under its original name.
	assert.True(t, exists(t, filepath.Join(dir, "work", "work-")))
	assert.Equal(t, 1, res.Moved)
}

func TestApply_ConflictSkipsFile(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-a.txt", "work-b.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "work"), 0o755))
	mkfiles(t, filepath.Join(dir, "work"), "work-a.txt")

	plan, err := BuildPlan(dir, "-")
	require.NoError(t, err)

	res := Apply(plan, Options{})
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "already exists")
	assert.Equal(t, 1, res.Moved)
	// The conflicting source stays where it was.
	assert.True(t, exists(t, filepath.Join(dir, "work-a.txt")))
	assert.True(t, exists(t, filepath.Join(dir, "work", "work-b.txt")))
}

func TestPreview_MatchesApply(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-report.txt", "home-list.txt")

	plan, err := BuildPlan(dir, "-")
	require.NoError(t, err)

	preview := Preview(plan, Options{StripPrefix: true})
	res := Apply(plan, Options{StripPrefix: true})
	require.Empty(t, res.Errors)
	assert.Equal(t, preview, res.Moves)
}

func TestResult_Failed(t *testing.T) {
	assert.True(t, (&Result{Errors: []string{"boom"}}).Failed())
	assert.False(t, (&Result{Moved: 1, Errors: []string{"boom"}}).Failed())
	assert.False(t, (&Result{}).Failed())
}
