package assert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

// Contains checks that the page content includes marker verbatim.
func Contains(name string, page domain.Page, marker string) domain.AssertionResult {
	if marker == "" {
		return domain.AssertionResult{
			Name:    name,
			Passed:  false,
			Message: "empty marker",
		}
	}

	if page.Contains(marker) {
		return domain.AssertionResult{
			Name:    name,
			Passed:  true,
			Message: fmt.Sprintf("found %q", marker),
		}
	}

	return domain.AssertionResult{
		Name:    name,
		Passed:  false,
		Message: fmt.Sprintf("expected %q on %s%s", marker, describe(page), excerpt(page)),
	}
}

func describe(page domain.Page) string {
	if page.URL == "" {
		return "empty page"
	}
	if page.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", page.URL, page.StatusCode)
	}
	return page.URL
}

var reTitle = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// excerpt names the page by its <title>, which is usually enough to tell an error
// page or a changed layout apart.
func excerpt(page domain.Page) string {
	m := reTitle.FindStringSubmatch(page.HTML)
	if len(m) != 2 {
		return ""
	}
	title := strings.Join(strings.Fields(m[1]), " ")
	if title == "" {
		return ""
	}
	return fmt.Sprintf(", title %q", title)
}
