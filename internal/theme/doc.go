// Package theme defines the auto/light/dark preference and the CSS hooks
// (attribute, helper classes, theme-color values) it is reflected through.
// It also ships the embedded stylesheet for the toggle widget.
package theme
