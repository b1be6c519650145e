package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minCardWidth   = 20
	minImageHeight = 3
	maxImageHeight = 10
)

// ImageHeight is the fixed-aspect height of an image box for a card of the
// given outer width. Cells are roughly twice as tall as wide, so width/4
// rows approximates a 2:1 landscape frame.
func ImageHeight(width int) int {
	h := width / 4
	if h < minImageHeight {
		h = minImageHeight
	}
	if h > maxImageHeight {
		h = maxImageHeight
	}
	return h
}

// ImageBox draws the placeholder frame a terminal shows instead of the
// picture. The URL label is cropped to fit, never wrapped, so the box keeps
// its aspect whatever the source.
func ImageBox(t Theme, width int, url string) string {
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	label := t.SymImage + " " + url
	label = ansi.Truncate(label, inner, "…")
	return lipgloss.NewStyle().
		Border(t.ImageBorder).
		BorderForeground(t.ImageColor).
		Width(inner).
		Height(ImageHeight(width) - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(t.Muted.Render(label))
}

// Card renders one headline: optional image box above the wrapped title,
// inside a rounded frame of the given outer width.
func Card(t Theme, width int, title, imageURL string) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	// border (2) + padding (2)
	content := width - 4

	var parts []string
	if imageURL != "" {
		parts = append(parts, ImageBox(t, content, imageURL))
	}
	parts = append(parts, t.Title.Width(content).Render(title))

	return lipgloss.NewStyle().
		Border(t.CardBorder).
		BorderForeground(t.CardColor).
		Padding(0, 1).
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Panel draws a framed box around lines; used for non-interactive output.
func Panel(t Theme, lines []string) string {
	return lipgloss.NewStyle().
		Border(t.CardBorder).
		BorderForeground(t.CardColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
