package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themectl/internal/config"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themectl", "config.toml")

	origPath, origCfg, origForce := globalOpts.configPath, cfg, configOpts.force
	t.Cleanup(func() {
		globalOpts.configPath, cfg, configOpts.force = origPath, origCfg, origForce
	})

	globalOpts.configPath = path
	cfg = config.DefaultConfig()
	cfg.Store.Origin = "example.org"
	cfg.Compat.ForceDarkOnLightAuto = true
	configOpts.force = false

	var out bytes.Buffer
	configInitCmd.SetOut(&out)
	t.Cleanup(func() { configInitCmd.SetOut(nil) })

	require.NoError(t, runConfigInit(configInitCmd, nil))
	assert.Equal(t, path+"\n", out.String())

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "example.org", loaded.Store.Origin)
	assert.True(t, loaded.Compat.ForceDarkOnLightAuto)

	cfg.Store.Origin = "other.org"
	assert.Error(t, runConfigInit(configInitCmd, nil), "existing file kept without --force")

	configOpts.force = true
	require.NoError(t, runConfigInit(configInitCmd, nil))
	loaded, err = config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "other.org", loaded.Store.Origin)
}
