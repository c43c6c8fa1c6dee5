package colors

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SetupBackgroundColorTypeFromEnv initializes lipgloss's background color
// setting based on the GITSTACK_HAS_LIGHT_BG environment variable.
//
// Terminals that set COLORFGBG let lipgloss infer dark-vs-light on its
// own, but that doesn't always work, so this gives users a way to force
// it.
func SetupBackgroundColorTypeFromEnv() {
	envvar := strings.ToLower(os.Getenv("GITSTACK_HAS_LIGHT_BG"))
	switch envvar {
	case "true", "1", "yes", "y", "on":
		lipgloss.SetHasDarkBackground(false)
	case "false", "0", "no", "n", "off":
		lipgloss.SetHasDarkBackground(true)
	default:
		// Let lipgloss determine it from the terminal.
	}
	// Forces the background-color probe now, before any interactive
	// prompt runs, since querying it mid-prompt can hang on some
	// terminals.
	lipgloss.HasDarkBackground()
}
