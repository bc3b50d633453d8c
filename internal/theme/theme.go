// Package theme provides the Lip Gloss color palette and reusable styles
// for the userdeck TUI. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Card accent colors, chosen per gender label.
var (
	ColorMale        = lipgloss.Color("#3b82f6")
	ColorFemale      = lipgloss.Color("#a855f7")
	ColorUnspecified = lipgloss.Color("#9ca3af")
)

// Card body text.
var ColorCardText = lipgloss.Color("#408040")

// Accent for the email line.
var ColorAccent = lipgloss.Color("#ffcc80")

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorBg      = lipgloss.Color("#111827")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorInfo    = lipgloss.Color("#2563eb")
	ColorNav     = lipgloss.Color("#7c3aed")
)

// GenderColor returns the card accent for a gender label.
func GenderColor(label string) lipgloss.Color {
	switch label {
	case "male":
		return ColorMale
	case "female":
		return ColorFemale
	default:
		return ColorUnspecified
	}
}

// GenderGlyph returns a short symbol for a gender label.
func GenderGlyph(label string) string {
	switch label {
	case "male":
		return "♂"
	case "female":
		return "♀"
	default:
		return "·"
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)
)
