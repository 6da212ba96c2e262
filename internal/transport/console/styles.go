package console

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - selected button
	ErrorColor   = lipgloss.Color("#FF5555") // Red - status errors
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

var (
	// TitleStyle is for the header bar
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	// MessageStyle frames a chat message
	MessageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	// ActiveMessageStyle frames the message whose buttons are tappable
	ActiveMessageStyle = MessageStyle.
				BorderForeground(PrimaryColor)

	// ButtonStyle is for an idle inline button
	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	// SelectedButtonStyle is for the button under the cursor
	SelectedButtonStyle = ButtonStyle.
				BorderForeground(SuccessColor).
				Foreground(SuccessColor).
				Bold(true)

	// StatusStyle is for transient status lines
	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// ErrorStatusStyle is for status lines reporting a problem
	ErrorStatusStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether stdin and stdout are both terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
