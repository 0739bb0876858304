// Package console prints generation results for humans and for copying into
// an intercepting proxy.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// Styles colors the different kinds of console lines.
type Styles struct {
	Header lipgloss.Style
	Path   lipgloss.Style
	Label  lipgloss.Style
	Field  lipgloss.Style
	Warn   lipgloss.Style
	Error  lipgloss.Style
	Info   lipgloss.Style
}

// DefaultStyles mirrors the colors of the terminal UI.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Field:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// PlainStyles renders text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{plain, plain, plain, plain, plain, plain, plain}
}

// Printer writes console output and optionally mirrors it, without ANSI
// escapes, to a log.
type Printer struct {
	out       io.Writer
	log       io.Writer
	styles    Styles
	mode      string
	separator string
	err       error
}

// NewPrinter returns a printer for the given console mode. log may be nil.
func NewPrinter(out, log io.Writer, styles Styles, mode, separator string) *Printer {
	return &Printer{out: out, log: log, styles: styles, mode: mode, separator: separator}
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}

// Line prints one line.
func (p *Printer) Line(s string) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintln(p.out, s); err != nil {
		p.err = err
		return
	}
	if p.log != nil {
		if _, err := fmt.Fprintln(p.log, ansi.Strip(s)); err != nil {
			p.err = fmt.Errorf("failed to write console log: %w", err)
		}
	}
}

// Found prints the result header.
func (p *Printer) Found(n int, target string) {
	p.Line(p.styles.Header.Render(fmt.Sprintf("Found %d ways to reach the %q node:", n, target)))
}

// NoPaths prints the warning for an unreachable target.
func (p *Printer) NoPaths(root, target string) {
	p.Line(p.styles.Warn.Render(fmt.Sprintf("[WARN] No paths found from root %q to target %q.", root, target)))
}

// Paths prints only the numbered path labels.
func (p *Printer) Paths(labels []string) {
	for i, l := range labels {
		p.Line(p.separator)
		p.Line(p.styles.Path.Render(fmt.Sprintf("[%d] %s", i+1, l)))
	}
}

// Bodies prints each body under its label according to the console mode.
func (p *Printer) Bodies(labels []string, bodies []querygen.QueryBody) {
	for i, body := range bodies {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		p.Line(p.separator)
		p.Line(p.styles.Path.Render(fmt.Sprintf("[%d] PATH: %s", i+1, label)))

		switch p.mode {
		case config.ConsoleBurp:
			p.burp(body)
		case config.ConsoleBurpPretty:
			p.pretty(body)
			p.burp(body)
		default:
			p.pretty(body)
		}
	}
}

// Saved reports the output file location.
func (p *Printer) Saved(path string) {
	p.Line(p.separator)
	p.Line(p.styles.Info.Render("Saved Burp-ready output to: " + path))
}

func (p *Printer) pretty(body querygen.QueryBody) {
	vars, err := marshal(body.Variables, "  ")
	if err != nil {
		p.err = err
		return
	}
	p.Line(p.styles.Label.Render("BODY:"))
	p.Line(p.styles.Field.Render("operationName: " + body.OperationName))
	p.Line(p.styles.Field.Render("variables:"))
	p.Line(vars)
	p.Line(p.styles.Field.Render("query:"))
	p.Line(strings.TrimRight(body.Query, "\n"))
}

func (p *Printer) burp(body querygen.QueryBody) {
	line, err := marshal(body, "")
	if err != nil {
		p.err = err
		return
	}
	p.Line(p.styles.Label.Render("BURP BODY (copy the next line):"))
	p.Line(line)
}

// marshal encodes v without HTML escaping, indented when indent is set.
func marshal(v any, indent string) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode body: %w", err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
