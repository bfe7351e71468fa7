package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreference(t *testing.T) {
	tests := []struct {
		input   string
		want    Preference
		wantErr bool
	}{
		{"auto", Auto, false},
		{"light", Light, false},
		{"dark", Dark, false},
		{"Dark", "", true},
		{"sepia", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePreference(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPreference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreference_Label(t *testing.T) {
	assert.Equal(t, "Auto", Auto.Label())
	assert.Equal(t, "Light", Light.Label())
	assert.Equal(t, "Dark", Dark.Label())
}

func TestAll_Order(t *testing.T) {
	assert.Equal(t, []Preference{Auto, Light, Dark}, All())
}

func TestThemeColor(t *testing.T) {
	tests := []struct {
		name string
		pref Preference
		os   bool
		want string
	}{
		{"light ignores os", Light, true, ColorLight},
		{"dark ignores os", Dark, false, ColorDark},
		{"auto os dark", Auto, true, ColorDark},
		{"auto os light", Auto, false, ColorLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThemeColor(tt.pref, tt.os))
		})
	}
}

func TestEmbeddedStylesheet(t *testing.T) {
	s := EmbeddedStylesheet()
	require.True(t, s.Embedded)

	for _, hook := range []string{
		`[data-theme="dark"]`,
		".auto-dark",
		".auto-light",
		".theme-dropdown.open",
		".theme-dropdown-option.active",
		"--tc-dark-bg", // from the inlined palette partial
	} {
		assert.Contains(t, s.CSS, hook)
	}
	assert.NotContains(t, s.CSS, "import failed")
	assert.Equal(t, strings.Count(s.CSS, "{"), strings.Count(s.CSS, "}"))
}

func TestLoadStylesheet_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.css"), []byte(".extra { color: red; }"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StylesheetName),
		[]byte("@import \"extra.css\";\n@import \"_palette.css\";\n.theme-toggle {}"), 0644))

	s, err := LoadStylesheet(dir)
	require.NoError(t, err)
	assert.False(t, s.Embedded)
	assert.Equal(t, filepath.Join(dir, StylesheetName), s.Path)
	assert.Contains(t, s.CSS, ".extra { color: red; }")
	assert.Contains(t, s.CSS, "imported (embedded): _palette.css")
}

func TestLoadStylesheet_FallsBackToEmbedded(t *testing.T) {
	s, err := LoadStylesheet(t.TempDir())
	require.NoError(t, err)
	assert.True(t, s.Embedded)
}

func TestProcessImports_Circular(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte(`@import "b.css";`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.css"), []byte(`@import "a.css";`), 0644))

	out := ProcessImports(`@import "a.css";`, dir, nil)
	assert.Contains(t, out, "circular import prevented")
}
