package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	glowColor  = lipgloss.Color("#FFB000") // amber, the eye-glow hue
	errorColor = lipgloss.Color("#CC0000")
	mutedColor = lipgloss.Color("#888888") // Gray
	textColor  = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	// Title style - bold amber
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(glowColor).
			MarginBottom(1)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Glow value style - the one number the tool exists to produce
	GlowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(glowColor)
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("SilenceFade 👁"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintToken prints an issued token so the user can copy it into config.
func PrintToken(token string) {
	fmt.Printf("%s %s\n", KeyStyle.Render("Token:"), ValueStyle.Render(token))
}
