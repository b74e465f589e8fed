package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
}

var defaultTheme = theme{
	Primary: lipgloss.Color("#7aa2f7"),
	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Muted:   lipgloss.Color("#565f89"),
}

// printer - цветной вывод команд
type printer struct {
	out     io.Writer
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:     out,
		title:   lipgloss.NewStyle().Bold(true).Foreground(defaultTheme.Primary),
		success: lipgloss.NewStyle().Foreground(defaultTheme.Success),
		warning: lipgloss.NewStyle().Foreground(defaultTheme.Warning),
		failure: lipgloss.NewStyle().Bold(true).Foreground(defaultTheme.Error),
		muted:   lipgloss.NewStyle().Foreground(defaultTheme.Muted),
	}
}

func (p *printer) Title(text string) {
	fmt.Fprintln(p.out, p.title.Render(text))
}

func (p *printer) Success(text string) {
	fmt.Fprintln(p.out, p.success.Render("✅ "+text))
}

func (p *printer) Warning(text string) {
	fmt.Fprintln(p.out, p.warning.Render("⚠️  "+text))
}

func (p *printer) Error(text string, err error) {
	fmt.Fprintln(p.out, p.failure.Render(fmt.Sprintf("❌ %s: %v", text, err)))
}

// Field - строка "ключ: значение"
func (p *printer) Field(key, value string) {
	fmt.Fprintf(p.out, "%s %s\n", p.muted.Render(key+":"), value)
}

func (p *printer) Raw(text string) {
	fmt.Fprint(p.out, text)
}
