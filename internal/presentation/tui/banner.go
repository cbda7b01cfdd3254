package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the skein ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	lines := []string{
		`      _        _       `,
		`  ___| | _____(_)_ __  `,
		` / __| |/ / _ \ | '_ \ `,
		` \__ \   <  __/ | | | |`,
		` |___/_|\_\___|_|_| |_|`,
	}
	colors := []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

	fmt.Println()
	for i, l := range lines {
		fmt.Println(termenv.String(l).Foreground(p.Color(colors[i])))
	}
	fmt.Println()
}
