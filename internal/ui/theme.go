package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultTheme is used until the user picks another one.
const DefaultTheme = "kiro"

// Palette is the set of colors a theme assigns.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
}

var palettes = map[string]Palette{
	"kiro": {
		Primary:   "#7C3AED",
		Secondary: "#A78BFA",
		Success:   "#10B981",
		Warning:   "#F59E0B",
		Error:     "#EF4444",
		Muted:     "#6B7280",
		Text:      "#E5E7EB",
	},
	"midnight": {
		Primary:   "#3B82F6",
		Secondary: "#93C5FD",
		Success:   "#34D399",
		Warning:   "#FBBF24",
		Error:     "#F87171",
		Muted:     "#64748B",
		Text:      "#E2E8F0",
	},
	"jurassic": {
		Primary:   "#65A30D",
		Secondary: "#BEF264",
		Success:   "#22C55E",
		Warning:   "#EAB308",
		Error:     "#DC2626",
		Muted:     "#78716C",
		Text:      "#F5F5F4",
	},
	"daylight": {
		Primary:   "#B45309",
		Secondary: "#D97706",
		Success:   "#047857",
		Warning:   "#C2410C",
		Error:     "#B91C1C",
		Muted:     "#57534E",
		Text:      "#1C1917",
	},
}

var (
	currentTheme = DefaultTheme

	// Theme colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
	TextColor lipgloss.Color

	// Styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	SuccessStyle  lipgloss.Style
	WarningStyle  lipgloss.Style
	ErrorStyle    lipgloss.Style
	MutedStyle    lipgloss.Style
	BoxStyle      lipgloss.Style
	BannerStyle   lipgloss.Style
	PatternStyle  lipgloss.Style
)

func init() {
	apply(palettes[DefaultTheme])
}

// ThemeNames lists the available themes in alphabetical order.
func ThemeNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsTheme reports whether name is a known theme.
func IsTheme(name string) bool {
	_, ok := palettes[strings.ToLower(name)]
	return ok
}

// CurrentTheme returns the active theme name.
func CurrentTheme() string {
	return currentTheme
}

// SetTheme restyles all output with the named palette.
func SetTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	currentTheme = name
	apply(p)
	return nil
}

func apply(p Palette) {
	Primary = p.Primary
	Secondary = p.Secondary
	Success = p.Success
	Warning = p.Warning
	Error = p.Error
	Muted = p.Muted
	TextColor = p.Text

	TitleStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(Secondary)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Success)

	WarningStyle = lipgloss.NewStyle().
		Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Error)

	MutedStyle = lipgloss.NewStyle().
		Foreground(Muted)

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	BannerStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	PatternStyle = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
}
