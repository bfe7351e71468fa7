package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Preference is the user's theme choice.
type Preference string

const (
	// Auto follows the operating system appearance signal.
	Auto Preference = "auto"
	// Light always renders the light appearance.
	Light Preference = "light"
	// Dark always renders the dark appearance.
	Dark Preference = "dark"
)

// DefaultPreference is used until the user makes an explicit choice.
const DefaultPreference = Auto

// ErrInvalidPreference is returned when a value is not auto, light or dark.
var ErrInvalidPreference = errors.New("invalid theme preference")

// All returns every preference in dropdown order.
func All() []Preference {
	return []Preference{Auto, Light, Dark}
}

// ParsePreference converts a stored or user supplied value to a Preference.
// Matching is exact: stored values are always lowercase.
func ParsePreference(s string) (Preference, error) {
	p := Preference(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, s)
	}
	return p, nil
}

// Valid reports whether p is one of the known preferences.
func (p Preference) Valid() bool {
	switch p {
	case Auto, Light, Dark:
		return true
	default:
		return false
	}
}

// String returns the literal value written to data-theme and the store.
func (p Preference) String() string {
	return string(p)
}

// Label returns the capitalized name shown on the toggle button.
func (p Preference) Label() string {
	if p == "" {
		return ""
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Resolve returns whether p renders dark given the OS signal.
func (p Preference) Resolve(osPrefersDark bool) bool {
	switch p {
	case Dark:
		return true
	case Light:
		return false
	default:
		return osPrefersDark
	}
}
