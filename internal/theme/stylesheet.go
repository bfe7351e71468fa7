package theme

import (
	"embed"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// embeddedCSS contains the bundled toggle stylesheet and its partials.
//
//go:embed themes/*.css
var embeddedCSS embed.FS

// StylesheetName is the file name of the toggle stylesheet, both embedded
// and in the user override directory.
const StylesheetName = "toggle.css"

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Stylesheet describes the CSS served alongside the toggle.
type Stylesheet struct {
	Path     string // Empty for the embedded stylesheet
	CSS      string
	Embedded bool
}

// StylesDir returns the directory searched for a user override.
func StylesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "themectl", "themes"), nil
}

// EmbeddedStylesheet returns the bundled stylesheet with imports inlined.
func EmbeddedStylesheet() *Stylesheet {
	data, _ := embeddedCSS.ReadFile("themes/" + StylesheetName)
	return &Stylesheet{
		CSS:      ProcessImports(string(data), "", nil),
		Embedded: true,
	}
}

// LoadStylesheet loads dir/toggle.css when present, falling back to the
// embedded stylesheet. An empty dir uses StylesDir.
func LoadStylesheet(dir string) (*Stylesheet, error) {
	if dir == "" {
		var err error
		if dir, err = StylesDir(); err != nil {
			return EmbeddedStylesheet(), nil
		}
	}

	path := filepath.Join(dir, StylesheetName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EmbeddedStylesheet(), nil
		}
		return nil, err
	}

	return &Stylesheet{
		Path: path,
		CSS:  ProcessImports(string(data), dir, nil),
	}, nil
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, then against the embedded
// partials. The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}
		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		if baseDir != "" {
			if data, err := os.ReadFile(fullPath); err == nil {
				return "/* imported: " + importPath + " */\n" +
					ProcessImports(string(data), filepath.Dir(fullPath), seen)
			}
		}

		name := filepath.Base(importPath)
		if !strings.HasSuffix(name, ".css") {
			name += ".css"
		}
		if data, err := embeddedCSS.ReadFile("themes/" + name); err == nil {
			return "/* imported (embedded): " + importPath + " */\n" +
				ProcessImports(string(data), "", seen)
		}
		return "/* import failed: " + importPath + " */"
	})
}
