package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TrendIndicator returns a colored arrow and label for a life quality trend.
func TrendIndicator(t domain.Trend) string {
	switch t {
	case domain.TrendUp:
		return StyleGreen.Render("▲ up")
	case domain.TrendDown:
		return StyleRed.Render("▼ down")
	default:
		return StyleDim.Render("● steady")
	}
}

// SentimentStyle colors a sentiment in [-1, 1] by sign.
func SentimentStyle(v float64) lipgloss.Style {
	switch {
	case v <= -0.2:
		return StyleRed
	case v >= 0.2:
		return StyleGreen
	default:
		return StyleYellow
	}
}

// EnergyBadge renders the inferred energy level.
func EnergyBadge(e domain.Energy) string {
	switch e {
	case domain.EnergyLow:
		return StyleYellow.Render("○ low energy")
	case domain.EnergyHigh:
		return StyleGreen.Render("● high energy")
	default:
		return StyleBlue.Render("◐ medium energy")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
