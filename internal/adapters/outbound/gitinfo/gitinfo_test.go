package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/designlint/designlint/internal/adapters/outbound/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitInfo_IsGitRepo_True(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init")

	gi := gitinfo.New()
	assert.True(t, gi.IsGitRepo(dir))
}

func TestGitInfo_IsGitRepo_False(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	assert.False(t, gi.IsGitRepo(dir))
}

func TestGitInfo_CommitHash_FromDocumentInSubdir(t *testing.T) {
	dir := commitDocument(t)

	gi := gitinfo.New()
	hash, err := gi.CommitHash(filepath.Join(dir, "designs", "card.json"))
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	_, err := gi.CommitHash(dir)
	assert.Error(t, err)
}

func TestGitInfo_Modified(t *testing.T) {
	dir := commitDocument(t)
	doc := filepath.Join(dir, "designs", "card.json")
	gi := gitinfo.New()

	modified, err := gi.Modified(doc)
	require.NoError(t, err)
	assert.False(t, modified)

	require.NoError(t, os.WriteFile(doc, []byte(`{"name":"edited"}`), 0644))
	modified, err = gi.Modified(doc)
	require.NoError(t, err)
	assert.True(t, modified)
}

func commitDocument(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "designs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "designs", "card.json"), []byte(`{"name":"card"}`), 0644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
