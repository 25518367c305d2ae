package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// landingNotice is shown when interactive mode runs without the serving
// interface: the process has nothing further to offer and will exit.
const landingNotice = `# genloom

The database is initialized and the built-in packages are loaded, but the
serving interface is disabled.

- Run with the server enabled to browse packages and create sessions.
- Run ` + "`genloom generate`" + ` for headless artifact generation.
`

// PrintLandingNotice renders the landing notice: styled markdown on a TTY,
// plain text when output is redirected.
func PrintLandingNotice() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(landingNotice)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Detect light/dark background
	)
	if err != nil {
		fmt.Print(landingNotice)
		return
	}
	out, err := r.Render(landingNotice)
	if err != nil {
		fmt.Print(landingNotice)
		return
	}
	fmt.Print(out)
}
