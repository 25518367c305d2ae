package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the genloom startup banner with the build version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle teal-to-violet gradient
	s1 := termenv.String("                   _                       ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("   __ _  ___ _ __ | | ___   ___  _ __ ___  ").Foreground(p.Color("#38bdf8"))
	s3 := termenv.String("  / _` |/ _ \\ '_ \\| |/ _ \\ / _ \\| '_ ` _ \\ ").Foreground(p.Color("#60a5fa"))
	s4 := termenv.String(" | (_| |  __/ | | | | (_) | (_) | | | | | |").Foreground(p.Color("#818cf8"))
	s5 := termenv.String("  \\__, |\\___|_| |_|_|\\___/ \\___/|_| |_| |_|").Foreground(p.Color("#a78bfa"))
	s6 := termenv.String("  |___/").Foreground(p.Color("#c084fc"))
	ver := termenv.String("v" + version).Faint()

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Printf("%s  %s\n", s5, ver)
	fmt.Println(s6)
	fmt.Println()
}

// PrintURL announces the serving address on startup.
func PrintURL(addr string) {
	p := termenv.ColorProfile()
	url := "http://localhost" + addr
	fmt.Printf("Serving on %s\n", p.String(url).Underline())
}
