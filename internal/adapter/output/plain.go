package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats status as plain text.
type PlainFormatter struct {
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter. A custom template
// is executed against the Status.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{}
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}
	return f, nil
}

// Format writes the status as plain text.
func (f *PlainFormatter) Format(w io.Writer, s Status) error {
	if f.template != nil {
		if err := f.template.Execute(w, s); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "preference:  %s\n", s.Preference)
	fmt.Fprintf(&sb, "effective:   %s\n", s.Effective)
	fmt.Fprintf(&sb, "system:      %s\n", darkOrLight(s.SystemPrefersDark))
	fmt.Fprintf(&sb, "theme-color: %s\n", s.ThemeColor)
	if s.StorePath != "" {
		fmt.Fprintf(&sb, "store:       %s\n", s.StorePath)
	}
	if s.UpdatedAt != nil {
		fmt.Fprintf(&sb, "changed:     %s\n", relativeTime(*s.UpdatedAt))
	}
	if s.Degraded {
		sb.WriteString("warning:     preference store unavailable\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func darkOrLight(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func relativeTime(t time.Time) string {
	return humanize.Time(t)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"relativeTime": relativeTime,
		"upper":        strings.ToUpper,
		"darkOrLight":  darkOrLight,
	}
}
