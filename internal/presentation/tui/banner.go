package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Tessera ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to amber, one color per line
	lines := []struct{ text, color string }{
		{"  _____                             ", "#2dd4bf"},
		{" |_   _|__  ___ ___  ___ _ __ __ _  ", "#34d399"},
		{"   | |/ _ \\/ __/ __|/ _ \\ '__/ _` | ", "#a3e635"},
		{"   | |  __/\\__ \\__ \\  __/ | | (_| | ", "#facc15"},
		{"   |_|\\___||___/___/\\___|_|  \\__,_| ", "#fb923c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
