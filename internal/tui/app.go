// Package tui provides a terminal browser for generated paths and queries.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// KeyMap defines keyboard shortcuts.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view body"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "body/request"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles defines the visual styles for the browser.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Selected    lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Box         lipgloss.Style
	MenuItem    lipgloss.Style
	MenuItemSel lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default styling for the local terminal.
func DefaultStyles() Styles {
	return StylesFor(lipgloss.DefaultRenderer())
}

// StylesFor builds the default styling on r, so remote sessions get their
// own color profile.
func StylesFor(r *lipgloss.Renderer) Styles {
	accent := lipgloss.Color("#00ff41")
	muted := lipgloss.Color("#666666")
	text := lipgloss.Color("#e0e0e0")
	bg := lipgloss.Color("#0a0a0a")
	border := lipgloss.Color("#333333")

	return Styles{
		Title:    r.NewStyle().Foreground(accent).Bold(true),
		Subtitle: r.NewStyle().Foreground(muted),
		Selected: r.NewStyle().Foreground(accent).Bold(true),
		Normal:   r.NewStyle().Foreground(text),
		Muted:    r.NewStyle().Foreground(muted),
		Accent:   r.NewStyle().Foreground(accent),
		Box: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		MenuItem: r.NewStyle().Foreground(text).PaddingLeft(1),
		MenuItemSel: r.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true).
			PaddingLeft(1),
		Help: r.NewStyle().Foreground(muted).MarginTop(1),
	}
}

// Entry is one browsable path with its request body and, optionally, the
// raw HTTP request carrying it.
type Entry struct {
	Label   string
	Body    querygen.QueryBody
	Request string
}

// Model lists entries and shows one in detail.
type Model struct {
	keys     KeyMap
	styles   Styles
	title    string
	entries  []Entry
	width    int
	height   int
	selected int
	detail   bool
	raw      bool
}

// NewModel creates a browser over entries.
func NewModel(title string, entries []Entry) Model {
	return Model{
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		title:   title,
		entries: entries,
	}
}

// WithStyles replaces the styles, which tests use to get plain output.
func (m Model) WithStyles(s Styles) Model {
	m.styles = s
	return m
}

// Selected returns the index of the highlighted entry.
func (m Model) Selected() int {
	return m.selected
}

// InDetail reports whether an entry is open.
func (m Model) InDetail() bool {
	return m.detail
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		if m.detail {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.detail = false
				m.raw = false
			case key.Matches(msg, m.keys.Toggle):
				if m.entries[m.selected].Request != "" {
					m.raw = !m.raw
				}
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Enter):
			if len(m.entries) > 0 {
				m.detail = true
			}
		}
	}
	return m, nil
}

// Run starts the browser on the terminal.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
