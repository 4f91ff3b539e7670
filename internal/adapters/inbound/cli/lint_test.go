package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/designlint/designlint/internal/adapters/inbound/cli"
	"github.com/designlint/designlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/documents"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func lintJSON(t *testing.T, args ...string) []domain.Report {
	t.Helper()
	out, err := runCLI(t, append([]string{"lint", "--json"}, args...)...)
	require.NoError(t, err)
	var reports []domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	return reports
}

func TestLintCommand_JSON(t *testing.T) {
	project := t.TempDir()
	reports := lintJSON(t, "--project", project, filepath.Join(fixtureDir, "card.json"))

	require.Len(t, reports, 1)
	assert.Equal(t, "Card", reports[0].Document)
	assert.Equal(t, 4, reports[0].IssueCount())
}

func TestLintCommand_Directory(t *testing.T) {
	project := t.TempDir()
	reports := lintJSON(t, "--project", project, fixtureDir)
	assert.Len(t, reports, 3)
}

func TestLintCommand_SelectAll(t *testing.T) {
	project := t.TempDir()
	reports := lintJSON(t, "--project", project, "--all", filepath.Join(fixtureDir, "card.json"))

	require.Len(t, reports, 1)
	assert.Equal(t, 5, reports[0].IssueCount(), "the local component is linted too")
	assert.Equal(t, 1, reports[0].CountByCategory()[domain.CategoryComponent])
}

func TestLintCommand_Select(t *testing.T) {
	project := t.TempDir()
	reports := lintJSON(t, "--project", project, "--select", "1:3", filepath.Join(fixtureDir, "card.json"))

	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].IssueCount())
}

func TestLintCommand_SelectUnknownLayer(t *testing.T) {
	_, err := runCLI(t, "lint", "--project", t.TempDir(), "--select", "9:9", filepath.Join(fixtureDir, "card.json"))
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestLintCommand_CIFails(t *testing.T) {
	_, err := runCLI(t, "lint", "--project", t.TempDir(), "--ci", filepath.Join(fixtureDir, "card.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 4 design lint issues")
}

func TestLintCommand_CIPasses(t *testing.T) {
	_, err := runCLI(t, "lint", "--project", t.TempDir(), "--ci", filepath.Join(fixtureDir, "clean.json"))
	assert.NoError(t, err)
}

func TestLintCommand_DefaultTUI(t *testing.T) {
	out, err := runCLI(t, "lint", "--project", t.TempDir(), filepath.Join(fixtureDir, "card.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "designlint")
	assert.Contains(t, out, "Background")
	assert.Contains(t, out, "Missing fill style")
}

func TestLintCommand_MutuallyExclusiveSelection(t *testing.T) {
	_, err := runCLI(t, "lint", "--all", "--select", "1:1", filepath.Join(fixtureDir, "card.json"))
	assert.Error(t, err)
}

func TestLintCommand_NoDocuments(t *testing.T) {
	_, err := runCLI(t, "lint", "--project", t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents found")
}

func TestLintCommand_HistoryRecordsRuns(t *testing.T) {
	project := t.TempDir()
	doc := filepath.Join(fixtureDir, "card.json")

	_, err := runCLI(t, "lint", "--project", project, doc)
	require.NoError(t, err)

	out, err := runCLI(t, "lint", "--project", project, "--history", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "Lint History")
	assert.Contains(t, out, "Card")
	assert.Equal(t, 2, strings.Count(out, "4 issues"))
	assert.FileExists(t, filepath.Join(project, ".designlint", "history", "runs.json"))
}

func TestLintCommand_Exclude(t *testing.T) {
	project := t.TempDir()
	reports := lintJSON(t, "--project", project, "--exclude", "card.yaml,clean.json", fixtureDir)

	require.Len(t, reports, 1)
	assert.Equal(t, "Card", reports[0].Document)
}
