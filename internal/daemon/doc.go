// Package daemon runs the theme controller as a long-lived process: a
// serialized event loop, and the page writer that keeps an HTML file in sync
// with the controller's document.
package daemon
