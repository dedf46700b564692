package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  ____                                   _   ", "#818cf8"},
	{" |  _ \\ _____      _____ _ __ ___  ___| |_ ", "#a78bfa"},
	{" | |_) / _ \\ \\ /\\ / / _ \\ '__/ __|/ _ \\ __|", "#c084fc"},
	{" |  __/ (_) \\ V  V /  __/ |  \\__ \\  __/ |_ ", "#e879f9"},
	{" |_|   \\___/ \\_/\\_/ \\___|_|  |___/\\___|\\__|", "#f472b6"},
}

// PrintBanner writes the ASCII banner to w, followed by the version when set.
// Colors degrade to whatever the terminal profile supports.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  NFA → DFA by subset construction  "+version).Faint())
	}
	fmt.Fprintln(w)
}
