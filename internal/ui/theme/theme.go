package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette. Apply swaps these for the high contrast set.
var (
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
)

type palette struct {
	primary, secondary, accent, success, error string
	text, textDim, bgDark, bgCard, border      string
	yellow, cyan                               string
}

var standard = palette{
	primary:   "#E11D48", // Torii red
	secondary: "#14B8A6", // Teal
	accent:    "#F97316", // Orange
	success:   "#22C55E", // Green
	error:     "#F43F5E", // Rose
	text:      "#F8FAFC", // White
	textDim:   "#94A3B8", // Slate
	bgDark:    "#0F172A", // Deep Navy
	bgCard:    "#1E293B", // Dark Slate
	border:    "#334155", // Slate
	yellow:    "#FACC15",
	cyan:      "#22D3EE",
}

var highContrast = palette{
	primary:   "#FFFF00",
	secondary: "#00FFFF",
	accent:    "#FF8800",
	success:   "#00FF00",
	error:     "#FF3333",
	text:      "#FFFFFF",
	textDim:   "#DDDDDD",
	bgDark:    "#000000",
	bgCard:    "#000000",
	border:    "#FFFFFF",
	yellow:    "#FFFF00",
	cyan:      "#00FFFF",
}

func init() {
	Apply(false)
}

// Apply switches the palette. Styles are built at render time, so the
// change shows on the next frame.
func Apply(contrast bool) {
	p := standard
	if contrast {
		p = highContrast
	}
	Primary = lipgloss.Color(p.primary)
	Secondary = lipgloss.Color(p.secondary)
	Accent = lipgloss.Color(p.accent)
	Success = lipgloss.Color(p.success)
	Error = lipgloss.Color(p.error)
	Text = lipgloss.Color(p.text)
	TextDim = lipgloss.Color(p.textDim)
	BgDark = lipgloss.Color(p.bgDark)
	BgCard = lipgloss.Color(p.bgCard)
	Border = lipgloss.Color(p.border)
	ArcadeYellow = lipgloss.Color(p.yellow)
	ArcadeCyan = lipgloss.Color(p.cyan)
}

// Centered returns a full-width centered style in fg.
func Centered(width int, fg color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg)
}

// Selected styles the highlighted row of a list.
func Selected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Primary).Bold(true)
}

// Unselected styles every other row.
func Unselected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Text)
}

