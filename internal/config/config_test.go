package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "localhost", cfg.Store.Origin)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, "auto", cfg.Appearance.Source)
	assert.False(t, cfg.Compat.ForceDarkOnLightAuto)
	assert.Equal(t, "nav-links", cfg.Document.NavClass)
	assert.True(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[store]
origin = "example.com"
path = "/tmp/prefs.toml"

[appearance]
source = "portal"

[compat]
force_dark_on_light_auto = true

[document]
nav_class = "site-nav"

[tui]
show_help = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Store.Origin)
	assert.Equal(t, "/tmp/prefs.toml", cfg.Store.Path)
	assert.Equal(t, "portal", cfg.Appearance.Source)
	assert.True(t, cfg.Compat.ForceDarkOnLightAuto)
	assert.Equal(t, "site-nav", cfg.Document.NavClass)
	assert.False(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[appearance]
source = "dark"

[document]
nav_class = ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Appearance.Source)
	// Unchanged and emptied fields fall back to defaults
	assert.Equal(t, "localhost", cfg.Store.Origin)
	assert.Equal(t, "nav-links", cfg.Document.NavClass)
	assert.True(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_UnknownSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[appearance]\nsource = \"moon\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unknown appearance source")
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Store.Origin = "blog.example.org"
	cfg.Compat.ForceDarkOnLightAuto = true

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "blog.example.org", loaded.Store.Origin)
	assert.True(t, loaded.Compat.ForceDarkOnLightAuto)
}

func TestConfig_StorePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	cfg := DefaultConfig()
	cfg.Store.Origin = "example.com"
	path, err := cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/data/themectl/example.com.toml", path)

	cfg.Store.Path = "/elsewhere/prefs.toml"
	path, err = cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/prefs.toml", path)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/themectl/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "themectl/config.toml")
}
