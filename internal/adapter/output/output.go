// Package output provides output formatters for theme status.
package output

import (
	"io"
	"time"
)

// Status is the reportable state of the theme preference.
type Status struct {
	Preference        string     `json:"preference" yaml:"preference"`
	Effective         string     `json:"effective" yaml:"effective"`
	SystemPrefersDark bool       `json:"system_prefers_dark" yaml:"system_prefers_dark"`
	HasUsedDarkMode   bool       `json:"has_used_dark_mode" yaml:"has_used_dark_mode"`
	ThemeColor        string     `json:"theme_color" yaml:"theme_color"`
	StorePath         string     `json:"store_path,omitempty" yaml:"store_path,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Degraded          bool       `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// Formatter formats a Status for output.
type Formatter interface {
	// Format writes the formatted status to the writer.
	Format(w io.Writer, s Status) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom Go template for plain format
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}
