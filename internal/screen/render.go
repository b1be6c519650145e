package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/headlines/internal/model"
	"github.com/Makepad-fr/headlines/internal/ui"
)

const (
	maxCardWidth = 100
	emptyList    = "No headlines right now."
)

// RenderCards returns one card per article, in order. Position is the only
// identity a card has, so duplicate titles are fine.
func RenderCards(t ui.Theme, width int, articles []model.Article) []string {
	w := cardWidth(width)
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		img := ""
		if a.HasImage() {
			img = strings.TrimSpace(a.ImageURL)
		}
		out = append(out, ui.Card(t, w, a.DisplayTitle(), img))
	}
	return out
}

// RenderList is the scrollable body of the Loaded view.
func RenderList(t ui.Theme, width int, articles []model.Article) string {
	if len(articles) == 0 {
		return t.Muted.Render(emptyList)
	}
	return strings.Join(RenderCards(t, width, articles), "\n\n")
}

func cardWidth(width int) int {
	w := width - 2
	if w > maxCardWidth {
		w = maxCardWidth
	}
	return w
}

func header(t ui.Theme, country string, n int, scroll float64) string {
	left := t.Title.Render("Top headlines")
	if country != "" {
		left += "  " + t.Accent.Render(strings.ToUpper(country))
	}
	noun := "articles"
	if n == 1 {
		noun = "article"
	}
	left += "  " + t.Muted.Render(fmt.Sprintf("%d %s", n, noun))
	return left + "  " + t.Muted.Render(fmt.Sprintf("%3.f%%", scroll*100))
}

// centered places s in the middle of a width x height area.
func centered(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

func errorView(t ui.Theme, width, height int, msg, hint string) string {
	w := width - 4
	if w > 72 {
		w = 72
	}
	if w < 10 {
		w = 10
	}
	body := t.Error.Width(w).Align(lipgloss.Center).Render("Error: " + msg)
	return centered(width, height, lipgloss.JoinVertical(lipgloss.Center, body, "", hint))
}
