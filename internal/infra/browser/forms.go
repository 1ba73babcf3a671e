package browser

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

type htmlForm struct {
	method domain.HTTPMethod
	action string
	values domain.FormValues
}

// parseForm collects the values a browser would send for sel without any user input:
// named, enabled controls in document order. Buttons are left out; callers name the
// one they press.
func parseForm(sel *goquery.Selection) htmlForm {
	f := htmlForm{method: domain.MethodGet}

	if m, ok := sel.Attr("method"); ok && strings.EqualFold(strings.TrimSpace(m), "post") {
		f.method = domain.MethodPost
	}
	f.action, _ = sel.Attr("action")

	sel.Find("input, textarea, select").Each(func(_ int, c *goquery.Selection) {
		name, ok := c.Attr("name")
		if !ok || name == "" {
			return
		}
		if _, disabled := c.Attr("disabled"); disabled {
			return
		}

		switch goquery.NodeName(c) {
		case "textarea":
			f.values = append(f.values, domain.FormField{Name: name, Value: c.Text()})
		case "select":
			f.values = append(f.values, selectValues(name, c)...)
		default:
			typ := strings.ToLower(strings.TrimSpace(c.AttrOr("type", "text")))
			switch typ {
			case "submit", "button", "image", "reset", "file":
				return
			case "checkbox", "radio":
				if _, checked := c.Attr("checked"); !checked {
					return
				}
				f.values = append(f.values, domain.FormField{Name: name, Value: c.AttrOr("value", "on")})
			default:
				f.values = append(f.values, domain.FormField{Name: name, Value: c.AttrOr("value", "")})
			}
		}
	})

	return f
}

func selectValues(name string, sel *goquery.Selection) []domain.FormField {
	_, multiple := sel.Attr("multiple")
	options := sel.Find("option")

	var out []domain.FormField
	options.Each(func(_ int, o *goquery.Selection) {
		if _, selected := o.Attr("selected"); selected {
			out = append(out, domain.FormField{Name: name, Value: optionValue(o)})
		}
	})

	if len(out) == 0 && !multiple && options.Length() > 0 {
		out = append(out, domain.FormField{Name: name, Value: optionValue(options.First())})
	}
	if len(out) > 1 && !multiple {
		out = out[len(out)-1:]
	}
	return out
}

func optionValue(o *goquery.Selection) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return collapseSpace(o.Text())
}

// findLink returns the href of the first link whose visible text equals text.
func findLink(doc *goquery.Document, text string) (string, bool) {
	want := collapseSpace(text)
	var href string
	found := false

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if collapseSpace(a.Text()) != want {
			return true
		}
		href, found = a.Attr("href")
		return false
	})
	return href, found
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fieldNames is what gets logged; values may hold credentials.
func fieldNames(values domain.FormValues) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Name)
	}
	return out
}
