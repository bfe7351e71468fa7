package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themectl/internal/appearance"
	"github.com/jmylchreest/themectl/internal/controller"
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/store"
	"github.com/jmylchreest/themectl/internal/theme"
)

func TestBuildStatus(t *testing.T) {
	tests := []struct {
		name       string
		stored     string
		systemDark bool
		effective  string
		color      string
	}{
		{name: "auto on dark system", stored: "", systemDark: true, effective: "dark", color: theme.ColorDark},
		{name: "auto on light system", stored: "", systemDark: false, effective: "light", color: theme.ColorLight},
		{name: "explicit light", stored: "light", systemDark: true, effective: "light", color: theme.ColorLight},
		{name: "explicit dark", stored: "dark", systemDark: false, effective: "dark", color: theme.ColorDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := store.NewFileStore(filepath.Join(t.TempDir(), "localhost.toml"), "localhost")
			if tt.stored != "" {
				require.NoError(t, fs.Set(store.KeyTheme, tt.stored))
			}

			doc, err := document.ParseString(blankPage)
			require.NoError(t, err)
			ctrl := controller.New(controller.Options{
				Document: doc,
				Store:    fs,
				Signal:   appearance.NewStatic(tt.systemDark),
			})
			ctrl.Init()

			s := buildStatus(ctrl, fs, tt.systemDark)
			assert.Equal(t, tt.effective, s.Effective)
			assert.Equal(t, tt.color, s.ThemeColor)
			assert.Equal(t, tt.systemDark, s.SystemPrefersDark)
			assert.Equal(t, fs.Path(), s.StorePath)
			assert.False(t, s.Degraded)
			if tt.stored == "" {
				assert.Equal(t, "auto", s.Preference)
				assert.Nil(t, s.UpdatedAt)
			} else {
				assert.Equal(t, tt.stored, s.Preference)
				assert.NotNil(t, s.UpdatedAt)
			}
		})
	}
}

func TestBuildStatus_HasUsedDarkMode(t *testing.T) {
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "localhost.toml"), "localhost")
	doc, err := document.ParseString(blankPage)
	require.NoError(t, err)
	ctrl := controller.New(controller.Options{Document: doc, Store: fs})
	ctrl.Init()

	ctrl.SetPreference("dark")
	ctrl.SetPreference("auto")

	s := buildStatus(ctrl, fs, false)
	assert.True(t, s.HasUsedDarkMode)
	assert.Equal(t, "auto", s.Preference)
	assert.Equal(t, "light", s.Effective)
}

func TestRenderedAppearance_ForcedDark(t *testing.T) {
	doc, err := document.ParseString(blankPage)
	require.NoError(t, err)
	ctrl := controller.New(controller.Options{
		Document:             doc,
		Store:                store.NewMemoryStore(nil),
		Signal:               appearance.NewStatic(false),
		ForceDarkOnLightAuto: true,
	})
	ctrl.Init()

	assert.Equal(t, "dark", renderedAppearance(doc))
}
