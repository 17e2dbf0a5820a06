package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("REMINDD_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("REMINDD_STORAGE_DRIVER", "file")
	return dir
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SetContext(t.Context())
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestAddListDoneRemove(t *testing.T) {
	dir := isolatedEnv(t)
	var configPath string

	out, err := run(t, NewAddCmd(&configPath), "--time", "08:00", "--frequency", "daily", "Take", "medicine")
	require.NoError(t, err)
	assert.Contains(t, out, "added #")
	assert.Contains(t, out, "08:00 Take medicine (daily)")

	_, err = os.Stat(filepath.Join(dir, "data", "tasks.json"))
	require.NoError(t, err)

	out, err = run(t, NewListCmd(&configPath))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	id := strings.TrimPrefix(strings.Fields(lines[0])[0], "#")

	out, err = run(t, NewDoneCmd(&configPath), id)
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	out, err = run(t, NewListCmd(&configPath), "--filter", "pending")
	require.NoError(t, err)
	assert.Equal(t, "no tasks found\n", out)

	out, err = run(t, NewFavCmd(&configPath), id)
	require.NoError(t, err)
	assert.Contains(t, out, "starred")

	out, err = run(t, NewEditCmd(&configPath), id, "--time", "09:15")
	require.NoError(t, err)
	assert.Contains(t, out, "09:15 Take medicine")

	out, err = run(t, NewRemoveCmd(&configPath), id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	out, err = run(t, NewListCmd(&configPath))
	require.NoError(t, err)
	assert.Equal(t, "no tasks found\n", out)
}

func TestAddRejectsBadTime(t *testing.T) {
	isolatedEnv(t)
	var configPath string

	_, err := run(t, NewAddCmd(&configPath), "--time", "25:00", "Nap")
	assert.Error(t, err)
}

func TestEditUnknownTask(t *testing.T) {
	isolatedEnv(t)
	var configPath string

	_, err := run(t, NewEditCmd(&configPath), "12345", "--name", "x")
	assert.ErrorContains(t, err, "not found")
}

func TestExportImport(t *testing.T) {
	dir := isolatedEnv(t)
	var configPath string

	_, err := run(t, NewAddCmd(&configPath), "--time", "18:30", "Gym")
	require.NoError(t, err)

	exportPath := filepath.Join(dir, "tasks.yaml")
	_, err = run(t, NewExportCmd(&configPath), "--output", exportPath)
	require.NoError(t, err)

	out, err := run(t, NewImportCmd(&configPath), exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 of 1")

	out, err = run(t, NewListCmd(&configPath))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Gym"))
}
