// Package tui renders dialogue content for terminal hosts.
package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders line text as markdown using
// glamour, auto-detecting light/dark backgrounds. Authors routinely use
// emphasis in dialogue lines.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// FormatChoices renders a numbered choice list with the selected style.
func FormatChoices(choices []string) string {
	p := termenv.ColorProfile()
	out := ""
	for i, c := range choices {
		num := termenv.String(fmt.Sprintf("%d)", i+1)).Foreground(p.Color("#a78bfa")).Bold()
		out += fmt.Sprintf("  %s %s\n", num, c)
	}
	return out
}

// FormatPrompt styles the choice input prompt.
func FormatPrompt() string {
	p := termenv.ColorProfile()
	return termenv.String("choice> ").Foreground(p.Color("#818cf8")).String()
}
