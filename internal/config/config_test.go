package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "reminders_data.json", cfg.Storage.DataFile)
	assert.Equal(t, BackendAuto, cfg.Storage.Backend)
	assert.True(t, cfg.UI.ColoredOutput)
	assert.False(t, cfg.UI.ShowCreated)
	assert.True(t, cfg.UI.RenderDetails)
	assert.True(t, cfg.MCP.Autosave)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  data_file: /tmp/todo.db
  backend: sqlite
ui:
  colored_output: false
mcp:
  autosave: false
`), 0o644))

	t.Setenv("REMINDERS_UI_SHOW_CREATED", "true")
	t.Setenv("REMINDERS_STORAGE_BACKEND", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/todo.db", cfg.Storage.DataFile)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.False(t, cfg.UI.ColoredOutput)
	assert.True(t, cfg.UI.ShowCreated)
	assert.False(t, cfg.MCP.Autosave)
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("REMINDERS_STORAGE_DATA_FILE", "~/todo.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "todo.json"), cfg.Storage.DataFile)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataFile: "x.json", Backend: "xml"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Storage: StorageConfig{Backend: BackendJSON}}
	assert.Error(t, cfg.Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "storage.data_file", envKey("REMINDERS_STORAGE_DATA_FILE"))
	assert.Equal(t, "ui.colored_output", envKey("REMINDERS_UI_COLORED_OUTPUT"))
	assert.Equal(t, "debug", envKey("REMINDERS_DEBUG"))
}
