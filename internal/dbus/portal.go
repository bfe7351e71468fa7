// Package dbus reads the desktop appearance preference from the
// org.freedesktop.portal.Settings interface and follows its
// SettingChanged signal.
package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	// PortalBusName is the xdg-desktop-portal bus name.
	PortalBusName = "org.freedesktop.portal.Desktop"
	// PortalPath is the portal object path.
	PortalPath = "/org/freedesktop/portal/desktop"
	// SettingsInterface is the settings portal interface.
	SettingsInterface = "org.freedesktop.portal.Settings"

	// AppearanceNamespace and ColorSchemeKey address the colour scheme setting.
	AppearanceNamespace = "org.freedesktop.appearance"
	ColorSchemeKey      = "color-scheme"
)

// ColorScheme is the value of org.freedesktop.appearance color-scheme.
type ColorScheme uint32

const (
	ColorSchemeNoPreference ColorScheme = 0
	ColorSchemePreferDark   ColorScheme = 1
	ColorSchemePreferLight  ColorScheme = 2
)

// String returns the colour scheme name.
func (c ColorScheme) String() string {
	switch c {
	case ColorSchemeNoPreference:
		return "no-preference"
	case ColorSchemePreferDark:
		return "prefer-dark"
	case ColorSchemePreferLight:
		return "prefer-light"
	default:
		return "unknown"
	}
}

// PrefersDark reports whether the scheme asks for a dark appearance.
func (c ColorScheme) PrefersDark() bool {
	return c == ColorSchemePreferDark
}

// ColorSchemeHandler is called when the portal reports a new colour scheme.
type ColorSchemeHandler func(scheme ColorScheme)

// SettingsPortal tracks the desktop colour scheme.
type SettingsPortal struct {
	conn   *dbus.Conn
	logger *slog.Logger

	mu       sync.RWMutex
	scheme   ColorScheme
	handlers []ColorSchemeHandler
	signals  chan *dbus.Signal
	running  bool
}

// NewSettingsPortal creates a portal client. Call Start to connect.
func NewSettingsPortal(logger *slog.Logger) *SettingsPortal {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsPortal{logger: logger}
}

// Start connects to the session bus, reads the current colour scheme and
// subscribes to changes.
func (p *SettingsPortal) Start() error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("portal already started")
	}
	p.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	scheme, err := readColorScheme(conn.Object(PortalBusName, PortalPath))
	if err != nil {
		return err
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(PortalPath),
		dbus.WithMatchInterface(SettingsInterface),
		dbus.WithMatchMember("SettingChanged"),
	); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	p.mu.Lock()
	p.conn = conn
	p.scheme = scheme
	p.signals = signals
	p.running = true
	p.mu.Unlock()

	p.logger.Debug("settings portal started", "color_scheme", scheme.String())

	go p.processSignals(signals)
	return nil
}

// readColorScheme uses ReadOne, falling back to the deprecated Read on
// portals older than version 2.
func readColorScheme(obj dbus.BusObject) (ColorScheme, error) {
	var v dbus.Variant
	err := obj.Call(SettingsInterface+".ReadOne", 0, AppearanceNamespace, ColorSchemeKey).Store(&v)
	if err != nil {
		if err2 := obj.Call(SettingsInterface+".Read", 0, AppearanceNamespace, ColorSchemeKey).Store(&v); err2 != nil {
			return ColorSchemeNoPreference, fmt.Errorf("failed to read %s %s: %w", AppearanceNamespace, ColorSchemeKey, err2)
		}
	}

	scheme, ok := ParseColorScheme(v)
	if !ok {
		return ColorSchemeNoPreference, fmt.Errorf("unexpected color-scheme value %s", v.String())
	}
	return scheme, nil
}

// ParseColorScheme unwraps a (possibly nested) variant holding a uint32.
func ParseColorScheme(v dbus.Variant) (ColorScheme, bool) {
	for n := 0; n < 4; n++ {
		switch val := v.Value().(type) {
		case uint32:
			return ColorScheme(val), true
		case dbus.Variant:
			v = val
		default:
			return ColorSchemeNoPreference, false
		}
	}
	return ColorSchemeNoPreference, false
}

func (p *SettingsPortal) processSignals(ch <-chan *dbus.Signal) {
	for sig := range ch {
		p.handleSignal(sig)
	}
}

// handleSignal applies a SettingChanged(namespace, key, value) signal.
func (p *SettingsPortal) handleSignal(sig *dbus.Signal) {
	if sig == nil || sig.Name != SettingsInterface+".SettingChanged" || len(sig.Body) < 3 {
		return
	}
	namespace, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if namespace != AppearanceNamespace || key != ColorSchemeKey {
		return
	}

	value, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		p.logger.Warn("invalid color-scheme signal value", "type", fmt.Sprintf("%T", sig.Body[2]))
		return
	}
	scheme, ok := ParseColorScheme(value)
	if !ok {
		p.logger.Warn("unexpected color-scheme value", "value", value.String())
		return
	}

	p.mu.Lock()
	changed := scheme != p.scheme
	p.scheme = scheme
	handlers := append([]ColorSchemeHandler(nil), p.handlers...)
	p.mu.Unlock()

	if !changed {
		return
	}
	p.logger.Debug("color scheme changed", "color_scheme", scheme.String())
	for _, h := range handlers {
		h(scheme)
	}
}

// ColorScheme returns the last known colour scheme.
func (p *SettingsPortal) ColorScheme() ColorScheme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scheme
}

// OnChange registers a handler for colour scheme changes. Handlers run on
// the signal goroutine.
func (p *SettingsPortal) OnChange(h ColorSchemeHandler) {
	p.mu.Lock()
	p.handlers = append(p.handlers, h)
	p.mu.Unlock()
}

// Stop removes the signal subscription. The shared session bus connection
// is left open.
func (p *SettingsPortal) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	p.conn.RemoveSignal(p.signals)
	close(p.signals)
}
