package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the sitecanvas ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{`     _ _                                       `, "#818cf8"},
		{` ___(_) |_ ___  ___ __ _ _ ____   ____ _ ___ `, "#a78bfa"},
		{`/ __| | __/ _ \/ __/ _' | '_ \ \ / / _' / __|`, "#c084fc"},
		{`\__ \ | ||  __/ (_| (_| | | | \ V / (_| \__ \`, "#e879f9"},
		{`|___/_|\__\___|\___\__,_|_| |_|\_/ \__,_|___/`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  version "+version).Faint())
	fmt.Fprintln(w)
}
