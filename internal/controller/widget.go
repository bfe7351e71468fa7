package controller

import (
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/theme"
)

// widget holds the toggle elements owned by the controller.
type widget struct {
	container *document.Element
	button    *document.Element
	label     *document.Element
	dropdown  *document.Element
	options   []*document.Element
}

// buildWidget creates the toggle markup:
//
//	<div class="theme-toggle">
//	  <button class="theme-toggle-btn" aria-label="Theme selector">
//	    <span class="theme-current">Auto</span>
//	  </button>
//	  <div class="theme-dropdown">
//	    <button class="theme-dropdown-option" data-theme="auto">Auto</button>
//	    ...
//	  </div>
//	</div>
func buildWidget(doc *document.Document) *widget {
	w := &widget{
		container: doc.CreateElement("div"),
		button:    doc.CreateElement("button"),
		label:     doc.CreateElement("span"),
		dropdown:  doc.CreateElement("div"),
	}

	w.container.AddClass(theme.ClassToggle)

	w.button.AddClass(theme.ClassToggleButton)
	w.button.SetAttr("aria-label", "Theme selector")
	w.label.AddClass(theme.ClassCurrent)
	w.label.SetText(theme.DefaultPreference.Label())
	w.button.AppendChild(w.label)

	w.dropdown.AddClass(theme.ClassDropdown)
	for _, p := range theme.All() {
		opt := doc.CreateElement("button")
		opt.AddClass(theme.ClassOption)
		opt.SetAttr("data-"+theme.DataTheme, p.String())
		opt.SetText(p.Label())
		w.dropdown.AppendChild(opt)
		w.options = append(w.options, opt)
	}

	w.container.AppendChild(w.button)
	w.container.AppendChild(w.dropdown)
	return w
}

// adoptWidget takes ownership of toggle markup already present in the page.
// It returns nil when the markup is incomplete. A page always loads with the
// dropdown closed, whatever state was saved into the markup.
func adoptWidget(container *document.Element) *widget {
	w := &widget{
		container: container,
		button:    container.FindByClass(theme.ClassToggleButton),
		dropdown:  container.FindByClass(theme.ClassDropdown),
		options:   container.FindAllByClass(theme.ClassOption),
	}
	if w.button == nil || w.dropdown == nil {
		return nil
	}
	w.label = w.button.FindByClass(theme.ClassCurrent)
	w.setOpen(false)
	return w
}

// optionFor returns the dropdown option containing target, or nil.
func (w *widget) optionFor(target *document.Element) *document.Element {
	for _, opt := range w.options {
		if opt.Contains(target) {
			return opt
		}
	}
	return nil
}

func (w *widget) isOpen() bool {
	return w.dropdown.HasClass(theme.ClassOpen)
}

func (w *widget) setOpen(open bool) {
	if open {
		w.dropdown.AddClass(theme.ClassOpen)
		w.button.AddClass(theme.ClassOpen)
		return
	}
	w.dropdown.RemoveClass(theme.ClassOpen)
	w.button.RemoveClass(theme.ClassOpen)
}

// render reflects the active preference on the label and options.
func (w *widget) render(current theme.Preference) {
	if w.label != nil {
		w.label.SetText(current.Label())
	}
	for _, opt := range w.options {
		if opt.Dataset(theme.DataTheme) == current.String() {
			opt.AddClass(theme.ClassActive)
		} else {
			opt.RemoveClass(theme.ClassActive)
		}
	}
}
