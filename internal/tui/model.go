// Package tui provides the BubbleTea-based terminal front end for the theme
// toggle.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themectl/internal/controller"
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/theme"
)

// Dispatcher carries controller callbacks from other goroutines into the
// BubbleTea update loop.
type Dispatcher struct {
	events chan func()
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{events: make(chan func(), 16)}
}

// Post queues fn to run inside Update. Use it as controller.Options.Dispatch.
func (d *Dispatcher) Post(fn func()) {
	d.events <- fn
}

// Model is the TUI model.
type Model struct {
	ctrl     *controller.Controller
	doc      *document.Document
	dispatch *Dispatcher
	onChange func()

	keys     KeyMap
	help     help.Model
	showHelp bool

	cursor int
	width  int
	status string
}

// Options configures the model.
type Options struct {
	// Dispatcher must be the one passed to the controller, if any.
	Dispatcher *Dispatcher
	// OnChange runs after every event that may have changed the document.
	OnChange func()
	ShowHelp bool
}

// New creates a model around an initialized controller.
func New(ctrl *controller.Controller, opts Options) Model {
	m := Model{
		ctrl:     ctrl,
		doc:      ctrl.Document(),
		dispatch: opts.Dispatcher,
		onChange: opts.OnChange,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		showHelp: opts.ShowHelp,
	}
	m.cursor = m.indexOf(ctrl.CurrentTheme())
	if !ctrl.HasWidget() {
		m.status = "page has no navigation container; use a/l/d to switch"
	}
	return m
}

// Init starts waiting for dispatched events.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent
}

type dispatchMsg struct {
	fn func()
}

func (m Model) waitForEvent() tea.Msg {
	if m.dispatch == nil {
		return nil
	}
	return dispatchMsg{fn: <-m.dispatch.events}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case dispatchMsg:
		msg.fn()
		m.changed()
		return m, m.waitForEvent
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.toggleOrSelect()
	case key.Matches(msg, m.keys.Close):
		m.ctrl.HandleKey(controller.KeyEscape)
	case key.Matches(msg, m.keys.Up):
		if m.ctrl.DropdownOpen() && m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.ctrl.DropdownOpen() && m.cursor < len(theme.All())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Auto):
		m.selectDirect(theme.Auto)
	case key.Matches(msg, m.keys.Light):
		m.selectDirect(theme.Light)
	case key.Matches(msg, m.keys.Dark):
		m.selectDirect(theme.Dark)
	default:
		return m, nil
	}

	m.changed()
	return m, nil
}

// toggleOrSelect clicks the trigger when the dropdown is closed and the
// highlighted option when it is open.
func (m *Model) toggleOrSelect() {
	if !m.ctrl.HasWidget() {
		return
	}
	if m.ctrl.DropdownOpen() {
		m.ctrl.HandleClick(m.ctrl.Option(theme.All()[m.cursor]))
		return
	}
	m.cursor = m.indexOf(m.ctrl.CurrentTheme())
	m.ctrl.HandleClick(m.ctrl.Button())
}

func (m *Model) selectDirect(p theme.Preference) {
	m.ctrl.SetPreference(p.String())
	m.ctrl.CloseDropdown()
	m.cursor = m.indexOf(p)
}

func (m *Model) changed() {
	if m.ctrl.Degraded() {
		m.status = "preference store unavailable; changes last for this session only"
	}
	if m.onChange != nil {
		m.onChange()
	}
}

func (m Model) indexOf(p theme.Preference) int {
	if i := slices.Index(theme.All(), p); i >= 0 {
		return i
	}
	return 0
}

// View renders the toggle, its dropdown and a preview of the page state.
func (m Model) View() string {
	dark := m.ctrl.IsDarkMode()
	s := newStyles(dark)

	var b strings.Builder
	b.WriteString(s.title.Render("Theme"))
	b.WriteString("\n\n")

	open := m.ctrl.DropdownOpen()
	arrow := "▾"
	if open {
		arrow = "▴"
	}
	button := s.button
	if open {
		button = s.buttonOpen
	}
	b.WriteString(button.Render(fmt.Sprintf("%s %s", m.ctrl.CurrentTheme().Label(), arrow)))
	b.WriteString("\n")

	if open {
		var rows []string
		for i, p := range theme.All() {
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			label := p.Label()
			if p == m.ctrl.CurrentTheme() {
				label += " ✓"
				rows = append(rows, s.active.Render(marker+label))
			} else {
				rows = append(rows, s.option.Render(marker+label))
			}
		}
		b.WriteString(s.dropdown.Render(strings.Join(rows, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.preview.Render(m.previewText(dark)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(s.status.Render(m.status))
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) previewText(dark bool) string {
	effective := "light"
	if dark {
		effective = "dark"
	}

	var dataTheme, classes, color string
	if root := m.doc.Root(); root != nil {
		dataTheme, _ = root.Attr(theme.AttrTheme)
		classes = strings.Join(root.Classes(), " ")
	}
	if meta := m.doc.FindMeta(theme.MetaThemeColor); meta != nil {
		color, _ = meta.Attr("content")
	}
	if classes == "" {
		classes = "-"
	}

	return strings.Join([]string{
		"appearance   " + effective,
		"data-theme   " + dataTheme,
		"classes      " + classes,
		"theme-color  " + color,
	}, "\n")
}

type styles struct {
	title      lipgloss.Style
	button     lipgloss.Style
	buttonOpen lipgloss.Style
	dropdown   lipgloss.Style
	option     lipgloss.Style
	active     lipgloss.Style
	preview    lipgloss.Style
	status     lipgloss.Style
}

// newStyles colours the preview after the effective appearance.
func newStyles(dark bool) styles {
	bg, fg := lipgloss.Color(theme.ColorLight), lipgloss.Color(theme.ColorDark)
	if dark {
		bg, fg = lipgloss.Color(theme.ColorDark), lipgloss.Color("#e6e6e6")
	}

	border := lipgloss.NormalBorder()
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		button:     lipgloss.NewStyle().Border(border).Padding(0, 1),
		buttonOpen: lipgloss.NewStyle().Border(border).BorderBottom(false).Padding(0, 1).Bold(true),
		dropdown:   lipgloss.NewStyle().Border(border).Padding(0, 1),
		option:     lipgloss.NewStyle(),
		active:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		preview:    lipgloss.NewStyle().Background(bg).Foreground(fg).Padding(1, 2),
		status:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Run runs the TUI until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
