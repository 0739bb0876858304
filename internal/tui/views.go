package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("No paths found."))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("q: quit"))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	if m.detail {
		m.viewDetail(&b)
	} else {
		m.viewList(&b)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) viewList(b *strings.Builder) {
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d paths", len(m.entries))))
	b.WriteString("\n\n")

	start, end := m.window()
	for i := start; i < end; i++ {
		cursor := "  "
		style := m.styles.MenuItem
		if i == m.selected {
			cursor = m.styles.Accent.Render("> ")
			style = m.styles.MenuItemSel
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("[%d] %s", i+1, m.entries[i].Label)) + "\n")
	}

	b.WriteString(m.styles.Help.Render("up/down or j/k: move  enter: view body  q: quit"))
}

func (m Model) viewDetail(b *strings.Builder) {
	e := m.entries[m.selected]

	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("[%d] %s", m.selected+1, e.Label)))
	b.WriteString("\n\n")

	var content string
	if m.raw {
		content = strings.ReplaceAll(e.Request, "\r\n", "\n")
	} else {
		var sb strings.Builder
		sb.WriteString(m.styles.Selected.Render("operationName: "))
		sb.WriteString(e.Body.OperationName)
		sb.WriteString("\n")
		sb.WriteString(m.styles.Selected.Render("variables:"))
		sb.WriteString("\n")
		sb.WriteString(indentJSON(e.Body.Variables))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Selected.Render("query:"))
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(e.Body.Query, "\n"))
		content = sb.String()
	}
	b.WriteString(m.styles.Box.Render(content))
	b.WriteString("\n")

	help := "esc: back  q: quit"
	if e.Request != "" {
		help = "tab: body/request  " + help
	}
	b.WriteString(m.styles.Help.Render(help))
}

// window returns the range of entries that fit the terminal height while
// keeping the selection visible.
func (m Model) window() (int, int) {
	rows := m.height - 8
	if m.height == 0 || rows >= len(m.entries) {
		return 0, len(m.entries)
	}
	if rows < 1 {
		rows = 1
	}
	start := m.selected - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(m.entries) {
		start = len(m.entries) - rows
	}
	return start, start + rows
}

func indentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
