// Package appearance exposes the operating system's "prefers dark" signal,
// both as a point-in-time query and as a change notification stream.
package appearance

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/jmylchreest/themectl/internal/dbus"
)

// Signal is the OS appearance signal.
type Signal interface {
	// PrefersDark reports the current OS preference.
	PrefersDark() bool

	// Subscribe registers fn for every change. Subscriptions last for the
	// lifetime of the signal; there is no unsubscribe.
	Subscribe(fn func(prefersDark bool))
}

// Source names accepted by Detect.
const (
	SourceAuto     = "auto"
	SourcePortal   = "portal"
	SourceTerminal = "terminal"
	SourceLight    = "light"
	SourceDark     = "dark"
)

// Static is a Signal whose value is set by the program. It backs the
// light/dark sources and tests.
type Static struct {
	mu   sync.Mutex
	dark bool
	subs []func(bool)
}

// NewStatic creates a Static signal.
func NewStatic(prefersDark bool) *Static {
	return &Static{dark: prefersDark}
}

// PrefersDark returns the current value.
func (s *Static) PrefersDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Subscribe registers fn.
func (s *Static) Subscribe(fn func(bool)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Set changes the value, notifying subscribers synchronously when it differs.
func (s *Static) Set(prefersDark bool) {
	s.mu.Lock()
	if s.dark == prefersDark {
		s.mu.Unlock()
		return
	}
	s.dark = prefersDark
	subs := append(([]func(bool))(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(prefersDark)
	}
}

// Terminal queries the terminal background colour. Terminals do not report
// changes, so subscribers are never called.
type Terminal struct {
	once sync.Once
	dark bool
}

// PrefersDark reports whether the terminal background is dark. The result
// is cached: the query writes an OSC sequence to the terminal.
func (t *Terminal) PrefersDark() bool {
	t.once.Do(func() {
		t.dark = lipgloss.HasDarkBackground()
	})
	return t.dark
}

// Subscribe is a no-op.
func (t *Terminal) Subscribe(func(bool)) {}

// Portal adapts the desktop settings portal.
type Portal struct {
	portal *dbus.SettingsPortal
}

// NewPortal connects to the settings portal.
func NewPortal(logger *slog.Logger) (*Portal, error) {
	p := dbus.NewSettingsPortal(logger)
	if err := p.Start(); err != nil {
		return nil, err
	}
	return &Portal{portal: p}, nil
}

// PrefersDark reports the last known desktop colour scheme.
func (p *Portal) PrefersDark() bool {
	return p.portal.ColorScheme().PrefersDark()
}

// Subscribe registers fn for colour scheme changes. fn runs on the D-Bus
// signal goroutine.
func (p *Portal) Subscribe(fn func(bool)) {
	p.portal.OnChange(func(scheme dbus.ColorScheme) {
		fn(scheme.PrefersDark())
	})
}

// Close stops following portal signals.
func (p *Portal) Close() {
	p.portal.Stop()
}

// stdoutIsTerminal reports whether a terminal background query can be
// answered.
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Detect returns the Signal for source. The auto source tries the portal,
// then the terminal background, then a fixed light appearance.
func Detect(source string, logger *slog.Logger) (Signal, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(source) {
	case SourceLight:
		return NewStatic(false), nil
	case SourceDark:
		return NewStatic(true), nil
	case SourceTerminal:
		return &Terminal{}, nil
	case SourcePortal:
		return NewPortal(logger)
	case SourceAuto, "":
		p, err := NewPortal(logger)
		if err == nil {
			return p, nil
		}
		return fallback(logger, err), nil
	default:
		return nil, fmt.Errorf("unknown appearance source %q", source)
	}
}

// fallback picks the auto source once the portal has failed with err.
// Without a terminal the background query has nothing to ask and would
// report a made-up default.
func fallback(logger *slog.Logger, err error) Signal {
	if stdoutIsTerminal() {
		logger.Debug("settings portal unavailable, using terminal background", "error", err)
		return &Terminal{}
	}
	logger.Warn("settings portal unavailable and no terminal, assuming light appearance", "error", err)
	return NewStatic(false)
}
