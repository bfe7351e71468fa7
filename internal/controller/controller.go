// Package controller implements the theme toggle: it resolves the active
// preference, reflects it onto the page, operates the dropdown and follows
// the OS appearance signal.
//
// A Controller is not safe for concurrent use. All operations and event
// handlers must run on one goroutine; callbacks arriving from other
// goroutines are routed through Options.Dispatch.
package controller

import (
	"log/slog"

	"github.com/jmylchreest/themectl/internal/appearance"
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/store"
	"github.com/jmylchreest/themectl/internal/theme"
)

// Options configures a Controller.
type Options struct {
	// Document is the page the controller renders into. Required.
	Document *document.Document

	// Store persists the preference. Nil keeps the preference in memory.
	Store store.Store

	// Signal is the OS appearance signal. Nil behaves as a light OS.
	Signal appearance.Signal

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// NavClass is the container the toggle is attached to.
	// Defaults to theme.DefaultNavClass.
	NavClass string

	// ForceDarkOnLightAuto reproduces the legacy startup behaviour where an
	// auto preference renders dark when the OS reports light. Off by default
	// pending product confirmation.
	ForceDarkOnLightAuto bool

	// Dispatch runs OS signal callbacks. Nil runs them inline, which is only
	// safe for signals that call back on the caller's goroutine.
	Dispatch func(func())
}

// IgnoreChanges is a Dispatch for one-shot renders. OS appearance changes
// arriving after Init are dropped, so the document is never touched from
// the signal's goroutine.
func IgnoreChanges(func()) {}

// Controller owns the theme preference and the page elements reflecting it.
type Controller struct {
	doc       *document.Document
	store     *store.Guarded
	signal    appearance.Signal
	logger    *slog.Logger
	navClass  string
	forceDark bool
	dispatch  func(func())

	current theme.Preference

	root   *document.Element
	meta   *document.Element
	widget *widget

	initialized bool
}

// New creates a Controller. Call Init to load the preference and render.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	signal := opts.Signal
	if signal == nil {
		signal = appearance.NewStatic(false)
	}
	navClass := opts.NavClass
	if navClass == "" {
		navClass = theme.DefaultNavClass
	}
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	return &Controller{
		doc:       opts.Document,
		store:     store.NewGuarded(opts.Store, logger),
		signal:    signal,
		logger:    logger,
		navClass:  navClass,
		forceDark: opts.ForceDarkOnLightAuto,
		dispatch:  dispatch,
		current:   theme.DefaultPreference,
		root:      opts.Document.Root(),
	}
}

// Init loads the persisted preference, attaches the toggle, applies the
// appearance and subscribes to OS appearance changes. Calling it again is a
// no-op.
func (c *Controller) Init() {
	if c.initialized {
		return
	}
	c.initialized = true

	c.current = c.loadPreference()
	c.attachWidget()
	c.ApplyAppearance(c.current)
	c.updateToggleUI()
	c.signal.Subscribe(func(prefersDark bool) {
		c.dispatch(func() { c.HandleAppearanceChange(prefersDark) })
	})

	c.logger.Debug("theme controller initialized",
		"current_theme", c.current,
		"system_prefers_dark", c.signal.PrefersDark(),
		"data_theme", c.rootTheme(),
		"widget", c.widget != nil)

	if c.current == theme.Auto && c.forceDark && !c.signal.PrefersDark() {
		c.applyDarkModeHints()
	}
}

func (c *Controller) loadPreference() theme.Preference {
	v, ok := c.store.Get(store.KeyTheme)
	if !ok {
		return theme.DefaultPreference
	}
	p, err := theme.ParsePreference(v)
	if err != nil {
		c.logger.Warn("ignoring stored theme", "error", err)
		return theme.DefaultPreference
	}
	return p
}

func (c *Controller) attachWidget() {
	if existing := c.doc.FindByClass(theme.ClassToggle); existing != nil {
		c.widget = adoptWidget(existing)
		c.logger.Debug("adopted existing toggle", "tag", existing.Tag(), "complete", c.widget != nil)
		return
	}

	nav := c.doc.FindByClass(c.navClass)
	if nav == nil {
		return
	}
	c.widget = buildWidget(c.doc)
	nav.AppendChild(c.widget.container)
	c.logger.Debug("toggle attached", "nav", nav.Tag(), "nav_class", c.navClass)
}

// SetPreference switches to value, persists it and updates the toggle.
// Values other than auto, light and dark are logged and ignored.
func (c *Controller) SetPreference(value string) {
	p, err := theme.ParsePreference(value)
	if err != nil {
		c.logger.Warn("invalid theme", "theme", value)
		return
	}

	c.current = p
	c.ApplyAppearance(p)
	c.store.Set(store.KeyTheme, p.String())
	c.updateToggleUI()

	if p == theme.Dark {
		c.store.Set(store.KeyHasUsedDarkMode, "true")
	}
}

// ApplyAppearance writes p to the root data-theme attribute, maintains the
// auto helper classes and refreshes the theme-color meta tag.
func (c *Controller) ApplyAppearance(p theme.Preference) {
	if c.root == nil {
		return
	}

	for _, t := range theme.All() {
		c.root.RemoveAttr(theme.AttrTheme + "-" + t.String())
	}
	c.root.SetAttr(theme.AttrTheme, p.String())

	if p == theme.Auto {
		prefersDark := c.signal.PrefersDark()
		c.logger.Debug("auto theme resolved", "system_prefers_dark", prefersDark)
		if prefersDark {
			c.root.AddClass(theme.ClassAutoDark)
			c.root.RemoveClass(theme.ClassAutoLight)
		} else {
			c.root.AddClass(theme.ClassAutoLight)
			c.root.RemoveClass(theme.ClassAutoDark)
		}
	} else {
		c.root.RemoveClass(theme.ClassAutoDark, theme.ClassAutoLight)
	}

	c.updateMetaThemeColor(p)
}

func (c *Controller) updateMetaThemeColor(p theme.Preference) {
	if c.meta == nil {
		c.meta = c.doc.FindMeta(theme.MetaThemeColor)
	}
	if c.meta == nil {
		head := c.doc.Head()
		if head == nil {
			return
		}
		c.meta = c.doc.CreateElement("meta")
		c.meta.SetAttr("name", theme.MetaThemeColor)
		head.AppendChild(c.meta)
	}
	c.meta.SetAttr("content", theme.ThemeColor(p, c.signal.PrefersDark()))
}

func (c *Controller) updateToggleUI() {
	if c.widget != nil {
		c.widget.render(c.current)
	}
}

// applyDarkModeHints is the legacy startup override. Whether or not the
// user has ever chosen dark, auto ends up rendered dark.
func (c *Controller) applyDarkModeHints() {
	if v, _ := c.store.Get(store.KeyHasUsedDarkMode); v == "true" {
		c.logger.Debug("user has previously used dark mode, applying dark theme for auto mode")
	} else {
		c.logger.Debug("defaulting to dark mode for auto theme")
	}
	c.forceDarkMode()
}

// forceDarkMode renders auto as dark regardless of the OS signal. The
// theme-color tag still follows the OS signal.
func (c *Controller) forceDarkMode() {
	if c.root == nil {
		return
	}
	c.root.SetAttr(theme.AttrTheme, theme.Auto.String())
	c.root.AddClass(theme.ClassAutoDark)
	c.root.RemoveClass(theme.ClassAutoLight)
	c.updateMetaThemeColor(theme.Auto)
	c.logger.Debug("dark mode forced", "classes", c.root.Classes())
}

// CurrentTheme returns the active preference.
func (c *Controller) CurrentTheme() theme.Preference {
	return c.current
}

// IsDarkMode reports the effective appearance. Auto consults the live OS
// signal.
func (c *Controller) IsDarkMode() bool {
	return c.current.Resolve(c.signal.PrefersDark())
}

// Degraded reports whether the preference store has failed this session.
func (c *Controller) Degraded() bool {
	return c.store.Degraded()
}

// HasWidget reports whether the toggle is attached to the page.
func (c *Controller) HasWidget() bool {
	return c.widget != nil
}

// Document returns the page the controller renders into.
func (c *Controller) Document() *document.Document {
	return c.doc
}

func (c *Controller) rootTheme() string {
	if c.root == nil {
		return ""
	}
	v, _ := c.root.Attr(theme.AttrTheme)
	return v
}
