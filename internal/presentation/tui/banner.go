package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the scrolly banner with the version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"                     _ _       ", "#818cf8"},
		{"  ___  ___ _ __ ___ | | |_   _ ", "#a78bfa"},
		{" / __|/ __| '__/ _ \\| | | | | |", "#c084fc"},
		{" \\__ \\ (__| | | (_) | | | |_| |", "#e879f9"},
		{" |___/\\___|_|  \\___/|_|_|\\__, |", "#f472b6"},
		{"                          |___/ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
