package controller

import (
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/store"
	"github.com/jmylchreest/themectl/internal/theme"
)

// KeyEscape is the key name that closes the dropdown.
const KeyEscape = "Escape"

// ToggleDropdown opens a closed dropdown and closes an open one.
func (c *Controller) ToggleDropdown() {
	if c.widget == nil {
		return
	}
	if c.widget.isOpen() {
		c.CloseDropdown()
	} else {
		c.OpenDropdown()
	}
}

// OpenDropdown marks the dropdown and its trigger open.
func (c *Controller) OpenDropdown() {
	if c.widget != nil {
		c.widget.setOpen(true)
	}
}

// CloseDropdown removes the open marker from the dropdown and its trigger.
func (c *Controller) CloseDropdown() {
	if c.widget != nil {
		c.widget.setOpen(false)
	}
}

// DropdownOpen reports whether the dropdown is open.
func (c *Controller) DropdownOpen() bool {
	return c.widget != nil && c.widget.isOpen()
}

// HandleClick processes a click on target. The trigger toggles the
// dropdown, an option selects its preference and closes it, and a click
// anywhere outside the toggle closes it.
func (c *Controller) HandleClick(target *document.Element) {
	if c.widget == nil || target == nil {
		return
	}

	if c.widget.button.Contains(target) {
		c.ToggleDropdown()
		return
	}
	if opt := c.widget.optionFor(target); opt != nil {
		c.SetPreference(opt.Dataset(theme.DataTheme))
		c.CloseDropdown()
		return
	}
	if !c.widget.container.Contains(target) {
		c.CloseDropdown()
	}
}

// HandleKey processes a key press anywhere in the page.
func (c *Controller) HandleKey(key string) {
	if key == KeyEscape {
		c.CloseDropdown()
	}
}

// HandleAppearanceChange re-applies auto after the OS appearance changed.
// Explicit light and dark preferences are unaffected.
func (c *Controller) HandleAppearanceChange(prefersDark bool) {
	c.logger.Debug("system appearance changed", "prefers_dark", prefersDark, "current_theme", c.current)
	if c.current != theme.Auto {
		return
	}
	c.ApplyAppearance(theme.Auto)
}

// HandleStoreChange picks up a preference written by another process
// sharing the store. It does not write back.
func (c *Controller) HandleStoreChange() {
	c.store.Forget(store.KeyTheme)
	v, ok := c.store.Get(store.KeyTheme)
	if !ok {
		return
	}
	p, err := theme.ParsePreference(v)
	if err != nil {
		c.logger.Warn("ignoring stored theme", "error", err)
		return
	}
	if p == c.current {
		return
	}

	c.logger.Debug("theme changed by another process", "theme", p)
	c.current = p
	c.ApplyAppearance(p)
	c.updateToggleUI()
}

// Option returns the dropdown option for p, or nil without a toggle.
func (c *Controller) Option(p theme.Preference) *document.Element {
	if c.widget == nil {
		return nil
	}
	for _, opt := range c.widget.options {
		if opt.Dataset(theme.DataTheme) == p.String() {
			return opt
		}
	}
	return nil
}

// Button returns the toggle trigger, or nil without a toggle.
func (c *Controller) Button() *document.Element {
	if c.widget == nil {
		return nil
	}
	return c.widget.button
}
