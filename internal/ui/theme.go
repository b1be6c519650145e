package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + card borders.
// CLI helpers pull from `current`; the screen carries its own copy.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error lipgloss.Style

	CardBorder  lipgloss.Border
	CardColor   lipgloss.TerminalColor
	ImageBorder lipgloss.Border
	ImageColor  lipgloss.TerminalColor

	SymOK, SymFail, SymImage string
}

var current = ThemeByName("classic")

// ThemeByName returns one of classic, neon or mono. Unknown names get classic.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			CardBorder:  lipgloss.RoundedBorder(),
			CardColor:   lipgloss.Color("13"),
			ImageBorder: lipgloss.NormalBorder(),
			ImageColor:  lipgloss.Color("14"),
			SymOK:       "✔", SymFail: "✖", SymImage: "◈",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:        "mono",
			Title:       plain.Bold(true),
			Muted:       plain,
			Accent:      plain,
			Success:     plain,
			Error:       plain,
			CardBorder:  lipgloss.RoundedBorder(),
			CardColor:   lipgloss.NoColor{},
			ImageBorder: lipgloss.ASCIIBorder(),
			ImageColor:  lipgloss.NoColor{},
			SymOK:       "ok", SymFail: "error", SymImage: "[img]",
		}
	default: // classic
		return Theme{
			Name:        "classic",
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			CardBorder:  lipgloss.RoundedBorder(),
			CardColor:   lipgloss.Color("8"),
			ImageBorder: lipgloss.NormalBorder(),
			ImageColor:  lipgloss.Color("8"),
			SymOK:       "✔", SymFail: "✖", SymImage: "▣",
		}
	}
}

func SetTheme(name string) { current = ThemeByName(name) }

// Expose what renderers need
func Current() Theme { return current }
