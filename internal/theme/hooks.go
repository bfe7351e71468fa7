package theme

// Document hooks produced on the root element and <head>.
const (
	AttrTheme      = "data-theme"
	ClassAutoDark  = "auto-dark"
	ClassAutoLight = "auto-light"
	MetaThemeColor = "theme-color"
)

// Widget hooks used by the toggle markup and the stylesheet.
const (
	ClassToggle       = "theme-toggle"
	ClassToggleButton = "theme-toggle-btn"
	ClassCurrent      = "theme-current"
	ClassDropdown     = "theme-dropdown"
	ClassOption       = "theme-dropdown-option"
	ClassOpen         = "open"
	ClassActive       = "active"

	// DataTheme is the dataset key carried by each dropdown option.
	DataTheme = "theme"

	// DefaultNavClass is the container the toggle is appended to.
	DefaultNavClass = "nav-links"
)

// Mobile browser chrome colours.
const (
	ColorLight = "#ffffff"
	ColorDark  = "#1a1a1a"
)

// ThemeColor returns the theme-color meta value for p.
// Auto resolves against the OS signal at the moment of the call.
func ThemeColor(p Preference, osPrefersDark bool) string {
	if p.Resolve(osPrefersDark) {
		return ColorDark
	}
	return ColorLight
}
