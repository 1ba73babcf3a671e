package extract

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

// CloneURLVar is the variable CloneURL extracts.
const CloneURLVar = "clone_url"

// cloneURLPattern matches the setup instructions shown for a new, empty repository.
const cloneURLPattern = `git remote add origin\s+([^\s<>"']+)`

// ErrNoMatch is returned by CloneURL when the page has no clone command.
var ErrNoMatch = fmt.Errorf("%w: clone command", domain.ErrNotFound)

// Apply extracts variables from page content using regular expressions.
// rules: map[varName]pattern, the first capture group is the value.
//
// Policy:
// - A rule fails on an invalid pattern, a pattern without a group, or no match.
// - If a rule fails -> it's reported in ExtractResult; other rules still run.
func Apply(content string, rules domain.ExtractSpec) (map[string]string, []domain.ExtractResult) {
	if len(rules) == 0 {
		return map[string]string{}, []domain.ExtractResult{}
	}

	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys) // stable output for tests/logs

	extracted := map[string]string{}
	results := make([]domain.ExtractResult, 0, len(keys))

	for _, name := range keys {
		expr := rules[name]
		if strings.TrimSpace(expr) == "" {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q: empty pattern", name),
			})
			continue
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): invalid pattern: %v", name, expr, err),
			})
			continue
		}
		if re.NumSubexp() < 1 {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): pattern has no capture group", name, expr),
			})
			continue
		}

		m := re.FindStringSubmatch(content)
		if m == nil || clean(m[1]) == "" {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): no value found", name, expr),
			})
			continue
		}

		extracted[name] = clean(m[1])
		results = append(results, domain.ExtractResult{
			Name:    name,
			Success: true,
			Message: fmt.Sprintf("extracted %q", name),
		})
	}

	return extracted, results
}

// CloneURL returns the <url> of the first "git remote add origin <url>" in content.
func CloneURL(content string) (string, error) {
	vars, results := Apply(content, domain.ExtractSpec{CloneURLVar: cloneURLPattern})
	if v, ok := vars[CloneURLVar]; ok {
		return v, nil
	}
	msg := "no value found"
	if len(results) == 1 {
		msg = results[0].Message
	}
	return "", fmt.Errorf("%w (%s)", ErrNoMatch, msg)
}

// clean undoes HTML escaping and drops sentence punctuation stuck to the value.
func clean(v string) string {
	return strings.TrimRight(html.UnescapeString(v), ".,;:")
}
