package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cheerioskun/antglob/fileset"
	"github.com/cheerioskun/antglob/internal/glob"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func (r cliResult) lines() []string {
	out := strings.TrimSpace(r.stdout)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func newProjectFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range []string{
		"/proj/setup.py",
		"/proj/README.md",
		"/proj/pkg/mod.py",
		"/proj/pkg/data.txt",
		"/proj/pkg/test/test_mod.py",
		"/proj/.git/HEAD",
	} {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0755))
		require.NoError(t, afero.WriteFile(fs, f, []byte(f), 0644))
	}
	return fs
}

func runCLI(t *testing.T, fs afero.Fs, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	o := newOptions(fs, &stdout, &stderr)
	cmd := newRootCmd(o)
	cmd.SetArgs(normalizeArgs(args))
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestCLI_Include(t *testing.T) {
	res := runCLI(t, newProjectFs(t), "/proj", "-i", "*.py")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"/proj/pkg/mod.py", "/proj/pkg/test/test_mod.py", "/proj/setup.py"}, res.lines())
}

func TestCLI_MultiValueFlags(t *testing.T) {
	res := runCLI(t, newProjectFs(t), "/proj", "-i", "*.py", "*.md", "-e", "**/test/**", "setup.py", "-r")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"./README.md", "./pkg/mod.py"}, res.lines())
}

func TestCLI_DefaultIncludeAndExcludes(t *testing.T) {
	fs := newProjectFs(t)

	res := runCLI(t, fs, "/proj", "-r")
	require.NoError(t, res.err)
	assert.Len(t, res.lines(), 5)
	assert.NotContains(t, res.stdout, ".git")

	res = runCLI(t, fs, "/proj", "-r", "--no-default-excludes")
	require.NoError(t, res.err)
	assert.Contains(t, res.lines(), "./.git/HEAD")
}

func TestCLI_NoMatchesIsSuccess(t *testing.T) {
	res := runCLI(t, newProjectFs(t), "/proj", "-i", "*.rs")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestCLI_CaseFlags(t *testing.T) {
	fs := newProjectFs(t)

	res := runCLI(t, fs, "/proj", "-i", "*.MD", "--case-sensitive")
	require.NoError(t, res.err)
	assert.Empty(t, res.lines())

	res = runCLI(t, fs, "/proj", "-i", "*.MD", "--insensitive")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"/proj/README.md"}, res.lines())

	res = runCLI(t, fs, "/proj", "--insensitive", "--case-sensitive")
	assert.Error(t, res.err)
}

func TestCLI_DirsAndMaxDepth(t *testing.T) {
	fs := newProjectFs(t)

	res := runCLI(t, fs, "/proj", "-i", "pkg/", "--dirs", "-r")
	require.NoError(t, res.err)
	assert.Contains(t, res.lines(), "./pkg")
	assert.Contains(t, res.lines(), "./pkg/test")

	res = runCLI(t, fs, "/proj", "-i", "*.py", "--max-depth", "1", "-r")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"./pkg/mod.py", "./setup.py"}, res.lines())
}

func TestCLI_Errors(t *testing.T) {
	fs := newProjectFs(t)

	res := runCLI(t, fs, "/proj", "-i", "a/../b")
	assert.ErrorIs(t, res.err, glob.ErrInvalidPattern)

	res = runCLI(t, fs, "/missing")
	assert.ErrorIs(t, res.err, fileset.ErrRoot)

	res = runCLI(t, fs, "/proj/setup.py")
	assert.ErrorIs(t, res.err, fileset.ErrRoot)

	res = runCLI(t, fs, "/proj", "--max-depth", "-2")
	assert.Error(t, res.err)

	res = runCLI(t, fs, "/proj", "/other")
	assert.Error(t, res.err)
}

func TestCLI_Usage(t *testing.T) {
	res := runCLI(t, afero.NewMemMapFs(), "--usage")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Ant globs")
	assert.Contains(t, res.stdout, "/myapp/**/__init__.py")
}

func TestCLI_Version(t *testing.T) {
	res := runCLI(t, afero.NewMemMapFs(), "--version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, version)
}

func TestCLI_ConfigFile(t *testing.T) {
	fs := newProjectFs(t)
	config := `directory: /proj
include:
  - "*.txt"
  - "*.md"
default_excludes: false
`
	require.NoError(t, afero.WriteFile(fs, "/etc/antglob.yaml", []byte(config), 0644))

	res := runCLI(t, fs, "--config", "/etc/antglob.yaml", "-r")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"./README.md", "./pkg/data.txt"}, res.lines())

	// Flags win over the file
	res = runCLI(t, fs, "--config", "/etc/antglob.yaml", "-r", "-i", "setup.py")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"./setup.py"}, res.lines())

	res = runCLI(t, fs, "--config", "/etc/missing.yaml")
	assert.ErrorContains(t, res.err, "failed to read config file")
}

func TestCLI_Environment(t *testing.T) {
	t.Setenv("ANTGLOB_MAX_DEPTH", "1")
	t.Setenv("ANTGLOB_INCLUDE", "*.py")

	res := runCLI(t, newProjectFs(t), "/proj", "-r")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"./pkg/mod.py", "./setup.py"}, res.lines())
}

func TestCLI_CopyTo(t *testing.T) {
	fs := newProjectFs(t)
	require.NoError(t, fs.MkdirAll("/out", 0755))

	res := runCLI(t, fs, "/proj", "-i", "pkg/**", "-e", "**/test/**", "--copy-to", "/out/copy", "-v")
	require.NoError(t, res.err)
	assert.Len(t, res.lines(), 2)

	data, err := afero.ReadFile(fs, "/out/copy/pkg/mod.py")
	require.NoError(t, err)
	assert.Equal(t, "/proj/pkg/mod.py", string(data))
	assert.Contains(t, res.stderr, "copied 2 files")

	res = runCLI(t, fs, "/proj", "-i", "pkg/**", "--copy-to", "/out/copy")
	assert.ErrorContains(t, res.err, "overwrite is disabled")

	res = runCLI(t, fs, "/proj", "-i", "pkg/**", "--copy-to", "/out/copy", "--overwrite")
	assert.NoError(t, res.err)
}

func TestCLI_VerboseSummary(t *testing.T) {
	res := runCLI(t, newProjectFs(t), "/proj", "-i", "/pkg/*.py", "-v")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"/proj/pkg/mod.py"}, res.lines())
	assert.Contains(t, res.stderr, "antglob: /proj")
	assert.Contains(t, res.stderr, "matches")
	assert.Contains(t, res.stderr, "pruned (excluded)")
}

func TestCLI_OverwriteWithoutCopyToWarns(t *testing.T) {
	logs := captureLogs(t)
	res := runCLI(t, newProjectFs(t), "/proj", "-i", "setup.py", "--overwrite")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"/proj/setup.py"}, res.lines())
	assert.Contains(t, logs.String(), "--overwrite has no effect without --copy-to")
}

func TestCLI_ConfigFileIsLogged(t *testing.T) {
	logs := captureLogs(t)
	fs := newProjectFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/antglob.yaml", []byte("include:\n  - \"*.md\"\n"), 0644))

	res := runCLI(t, fs, "/proj", "--config", "/etc/antglob.yaml")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"/proj/README.md"}, res.lines())
	assert.Contains(t, logs.String(), "Loaded config file /etc/antglob.yaml")
}
