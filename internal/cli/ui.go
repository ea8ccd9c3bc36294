package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sketchify/sketchify/pkg/params"
)

// stdout receives all user-facing status lines. Logs go to stderr.
var stdout io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as the style picker title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleHighlight renders style names and other picked values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	// StyleLink renders URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)
	// StyleValue renders paths and data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorValue)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKeyLabel    = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
)

// statusIcons maps a line kind to its glyph and colour.
var statusIcons = map[string]struct {
	glyph string
	style lipgloss.Style
}{
	"ok":   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	"fail": {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	"warn": {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	"info": {"›", lipgloss.NewStyle().Foreground(colorLabel)},
}

func printStatus(kind, msg string) {
	icon := statusIcons[kind]
	fmt.Fprintln(stdout, icon.style.Render(icon.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus("ok", fmt.Sprintf(format, args...)) }

func printError(format string, args ...any) { printStatus("fail", fmt.Sprintf(format, args...)) }

func printInfo(format string, args ...any) { printStatus("info", fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	printStatus("warn", statusIcons["warn"].style.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written sketch path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKeyLabel.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints one render summary: "W×H · strategy · elapsed · cached|fresh".
func printStats(width, height int, strategy string, elapsed time.Duration, cached bool) {
	var parts []string
	if width > 0 && height > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d×%d", width, height)))
	}
	if strategy != "" {
		parts = append(parts, StyleDim.Render(strategy))
	}
	if elapsed > 0 {
		parts = append(parts, StyleDim.Render(elapsed.Round(time.Millisecond).String()))
	}
	if cached {
		parts = append(parts, statusIcons["ok"].style.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

var styleTableHeader = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

// catalogTable renders style rows as "Style | Family | Description" with an
// optional leading marker column. selected is the highlighted row index, or
// -1 for none.
func catalogTable(styles []params.StyleInfo, marker func(i int) string, selected int) string {
	headers := []string{"Style", "Family", "Description"}
	if marker != nil {
		headers = append([]string{""}, headers...)
	}
	rows := make([][]string, len(styles))
	for i, s := range styles {
		rows[i] = []string{string(s.ID), string(s.Family), s.Description}
		if marker != nil {
			rows[i] = append([]string{marker(i)}, rows[i]...)
		}
	}
	idCol := len(headers) - 3

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case row == selected:
				return StyleHighlight.Bold(true)
			case col == idCol:
				return StyleHighlight
			case col > idCol:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
