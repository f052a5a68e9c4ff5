// Package report prints a human-readable summary of a material.
package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/smf/material"
)

// Banner is printed at the top of every report.
const Banner = "===============================\n" +
	"INFORMATION ABOUT THE MATERIAL\n" +
	"==============================="

// Printer writes material reports to a single writer.
type Printer struct {
	w     *bufio.Writer
	bold  lipgloss.Style
	name  lipgloss.Style
	proxy lipgloss.Style
}

// NewPrinter returns a [Printer] for w. Styles are rendered only when w is
// a terminal that supports them.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)

	return &Printer{
		w:     bufio.NewWriter(w),
		bold:  r.NewStyle().Bold(true),
		name:  r.NewStyle().Italic(true),
		proxy: r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Print writes the report for m to w.
func Print(w io.Writer, m *material.Material) error {
	return NewPrinter(w).Print(m)
}

// Print writes the report for m.
func (p *Printer) Print(m *material.Material) error {
	for line := range strings.SplitSeq(Banner, "\n") {
		p.line(0, p.bold.Render(line))
	}

	p.line(0, p.bold.Render("SHADER:")+" "+m.Shader)
	p.line(0, p.bold.Render("VARIABLES:"))

	for _, name := range m.VariableNames() {
		p.line(1, p.name.Render(name)+": "+m.Variables[name].String())
	}

	p.proxies("SETUP PROXIES:", m.Setup)
	p.proxies("RENDER PROXIES:", m.Render)

	return p.w.Flush()
}

func (p *Printer) proxies(title string, list []material.Proxy) {
	p.line(0, p.bold.Render(title))

	for _, px := range list {
		p.line(1, p.proxy.Render(px.Name))

		for _, name := range px.ParameterNames() {
			p.line(2, p.name.Render(name)+" = "+px.Parameters[name].String())
		}
	}
}

func (p *Printer) line(depth int, s string) {
	for range depth {
		_ = p.w.WriteByte('\t')
	}

	_, _ = p.w.WriteString(s)
	_ = p.w.WriteByte('\n')
}
