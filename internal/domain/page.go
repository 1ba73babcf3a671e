package domain

import "strings"

// Page is the content of the browser's current document.
type Page struct {
	URL        string
	StatusCode int
	HTML       string
}

// Contains reports whether the raw page content contains marker.
func (p Page) Contains(marker string) bool {
	return strings.Contains(p.HTML, marker)
}
