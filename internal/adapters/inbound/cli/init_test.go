package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/designlint/designlint/internal/adapters/inbound/cli"
	"github.com/designlint/designlint/internal/adapters/outbound/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".designlint.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "allowed_radii: [0, 2, 4, 8, 16]")
	assert.Contains(t, string(data), "storage_key: storedErrorsToIgnore")
}

func TestInitCmd_GeneratedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--radii", "0,6,12.5"})
	require.NoError(t, root.Execute())

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 6, 12.5}, cfg.AllowedRadii)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".designlint.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".designlint.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".designlint.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "allowed_radii:")
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_InvalidRadii(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--radii", "-4"})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "negative radius")
}
