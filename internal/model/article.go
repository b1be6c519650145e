package model

import "strings"

// Untitled is shown for articles the API returned without a usable title.
const Untitled = "(untitled)"

// Article is one headline as returned by the news API.
// Read-only once decoded; order in a slice is server order.
type Article struct {
	Title    string `json:"title"`
	ImageURL string `json:"urlToImage,omitempty"`
}

// HasImage reports whether the card should carry an image box.
func (a Article) HasImage() bool { return strings.TrimSpace(a.ImageURL) != "" }

// DisplayTitle never returns an empty string.
func (a Article) DisplayTitle() string {
	t := strings.TrimSpace(a.Title)
	if t == "" {
		return Untitled
	}
	return t
}
