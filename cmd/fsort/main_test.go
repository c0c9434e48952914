package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/fsort/pkg/organize"
)

// runCLI executes the root command with the given stdin and args, returning
// captured stdout+stderr and the command error.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"FSORT_SEPARATOR", "FSORT_THEME", "FSORT_LANG", "FSORT_NO_COLOR", "NO_COLOR", "FSORT_DEBUG"} {
		t.Setenv(key, "")
	}

	var out bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mkfiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestOrganize_AutoConfirm(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-a.txt", "work-b.txt", "home-c.txt")

	out, err := runCLI(t, "", "organize", dir, "-y")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 3 files in 2 categories.")
	assert.Contains(t, out, "Successfully moved 3 files to 2 directories.")
	assert.True(t, exists(filepath.Join(dir, "work", "work-a.txt")))
	assert.True(t, exists(filepath.Join(dir, "home", "home-c.txt")))
	assert.True(t, exists(filepath.Join(dir, organize.ManifestName)))
}

func TestOrganize_PromptDeclined(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-a.txt")

	out, err := runCLI(t, "n\n", "organize", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Operation cancelled.")
	assert.True(t, exists(filepath.Join(dir, "work-a.txt")))
	assert.False(t, exists(filepath.Join(dir, "work")))
}

func TestOrganize_PromptAccepted(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-a.txt")

	_, err := runCLI(t, "y\n", "organize", dir)
	require.NoError(t, err)
	assert.True(t, exists(filepath.Join(dir, "work", "work-a.txt")))
}

func TestOrganize_StripPrefixAndVerbose(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-report.txt")

	out, err := runCLI(t, "", "organize", dir, "-y", "-r", "-v")
	require.NoError(t, err)

	assert.Contains(t, out, "work-report.txt -> report.txt")
	assert.True(t, exists(filepath.Join(dir, "work", "report.txt")))
}

func TestOrganize_CustomSeparator(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work_a.txt", "home_b.txt")

	_, err := runCLI(t, "", "organize", dir, "-y", "-s", "_")
	require.NoError(t, err)
	assert.True(t, exists(filepath.Join(dir, "work", "work_a.txt")))
	assert.True(t, exists(filepath.Join(dir, "home", "home_b.txt")))
}

func TestOrganize_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	out, err := runCLI(t, "", "organize", dir, "-y")

	require.Error(t, err)
	assert.Contains(t, out, "Directory not found")
}

func TestOrganize_EmptyDirectory(t *testing.T) {
	out, err := runCLI(t, "", "organize", t.TempDir(), "-y")
	require.Error(t, err)
	assert.Contains(t, out, "No files found that can be organized.")
}

func TestReverse_ManifestRestoresExactNames(t *testing.T) {
	dir := t.TempDir()
	// "r&d" sanitizes to "r_d"; only the manifest can restore this name.
	mkfiles(t, dir, "r&d-plan.txt", "work-a.txt")

	_, err := runCLI(t, "", "organize", dir, "-y", "-r")
	require.NoError(t, err)
	require.True(t, exists(filepath.Join(dir, "r_d", "plan.txt")))

	out, err := runCLI(t, "", "reverse", dir, "-y")
	require.NoError(t, err)

	assert.Contains(t, out, "Reversing with manifest from run")
	assert.Contains(t, out, "Successfully moved 2 files back to the main directory.")
	assert.True(t, exists(filepath.Join(dir, "r&d-plan.txt")))
	assert.True(t, exists(filepath.Join(dir, "work-a.txt")))
	assert.False(t, exists(filepath.Join(dir, organize.ManifestName)))
	assert.False(t, exists(filepath.Join(dir, "r_d")))
}

func TestReverse_ScanFallback(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-a.txt")

	_, err := runCLI(t, "", "organize", dir, "-y", "--no-manifest")
	require.NoError(t, err)
	require.False(t, exists(filepath.Join(dir, organize.ManifestName)))

	out, err := runCLI(t, "", "reverse", dir, "-y")
	require.NoError(t, err)

	assert.NotContains(t, out, "manifest")
	assert.Contains(t, out, "Removed 1 empty subdirectories.")
	assert.True(t, exists(filepath.Join(dir, "work-a.txt")))
}

func TestReverse_NoSubdirectories(t *testing.T) {
	out, err := runCLI(t, "", "reverse", t.TempDir(), "-y")
	require.Error(t, err)
	assert.Contains(t, out, "No subdirectories found to reverse organization.")
}

func TestTree_Stdout(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "b.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	out, err := runCLI(t, "", "tree", dir, "-o", "-")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Base(dir)+"/")
	assert.Contains(t, out, "├── sub/")
	assert.Contains(t, out, "└── b.txt")
}

func TestTree_WritesFile(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "a.txt")
	output := filepath.Join(t.TempDir(), "tree.txt")

	out, err := runCLI(t, "", "tree", dir, "-o", output)
	require.NoError(t, err)

	assert.Contains(t, out, "Directory tree saved to: "+output)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "└── a.txt")
}

func TestTree_DefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "a.txt")
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "", "tree", dir)
	require.NoError(t, err)
	assert.True(t, exists(filepath.Base(dir)+"_tree.txt"))
}

func TestTree_MaxDepthAndHidden(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0o755))
	mkfiles(t, dir, ".hidden")

	out, err := runCLI(t, "", "tree", dir, "-o", "-", "--max-depth", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "deep")
	assert.NotContains(t, out, ".hidden")

	out, err = runCLI(t, "", "tree", dir, "-o", "-", "--show-hidden")
	require.NoError(t, err)
	assert.Contains(t, out, ".hidden")
}

func TestLanguageFlag(t *testing.T) {
	dir := t.TempDir()
	mkfiles(t, dir, "work-a.txt")

	out, err := runCLI(t, "", "organize", dir, "-y", "--lang", "tr")
	require.NoError(t, err)
	assert.Contains(t, out, "başarıyla taşındı")
}

func TestExitCode_UsageErrorsExitTwo(t *testing.T) {
	// Missing positional argument.
	_, err := runCLI(t, "", "organize")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	// Unknown flag.
	_, err = runCLI(t, "", "organize", t.TempDir(), "--bogus")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	// Mistyped subcommand.
	_, err = runCLI(t, "", "frobnicate")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestExitCode_OperationFailuresExitOne(t *testing.T) {
	_, err := runCLI(t, "", "organize", filepath.Join(t.TempDir(), "nope"), "-y")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "fsort version")
}
