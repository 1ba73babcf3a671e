// Package browser implements ports.Browser over net/http and goquery: a cookie-carrying
// session that loads HTML pages, submits their forms and follows their links.
package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/infra/httpclient"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

var (
	errNoPage = errors.New("no page loaded")
	errStatus = errors.New("unexpected HTTP status")
)

type Session struct {
	exec *httpclient.Executor
	log  *slog.Logger

	page domain.Page
	doc  *goquery.Document
}

type Option func(*Session)

// WithExecutor replaces the default executor (and therefore the cookie jar).
func WithExecutor(e *httpclient.Executor) Option {
	return func(s *Session) { s.exec = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func New(opts ...Option) *Session {
	s := &Session{
		exec: httpclient.NewExecutor(),
		log:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Browser = (*Session)(nil)

func (s *Session) Navigate(ctx context.Context, rawURL string) (domain.Page, error) {
	target, err := s.resolve(rawURL)
	if err != nil {
		return s.page, &domain.OpError{Op: "browser.navigate", Kind: domain.KindInvalidConfig, Err: err}
	}

	s.log.Debug("browser.navigate", "url", target)
	return s.load(ctx, "browser.navigate", domain.RequestSpec{
		Method: domain.MethodGet,
		URL:    target,
	})
}

func (s *Session) SubmitForm(ctx context.Context, formNumber int, fields map[string]string) (domain.Page, error) {
	if s.doc == nil {
		return s.page, &domain.OpError{Op: "browser.submit_form", Kind: domain.KindNotFound, Err: errNoPage}
	}

	forms := s.doc.Find("form")
	if formNumber < 1 || formNumber > forms.Length() {
		return s.page, &domain.OpError{
			Op:   "browser.submit_form",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("%w: form %d (page has %d)", domain.ErrNotFound, formNumber, forms.Length()),
		}
	}

	f := parseForm(forms.Eq(formNumber - 1))
	for _, name := range sortedKeys(fields) {
		f.values = f.values.Set(name, fields[name])
	}

	action, err := s.resolve(f.action)
	if err != nil {
		return s.page, &domain.OpError{Op: "browser.submit_form", Kind: domain.KindInvalidConfig, Err: err}
	}

	s.log.Debug("browser.submit_form",
		"form", formNumber,
		"method", string(f.method),
		"action", action,
		"fields", fieldNames(f.values),
	)

	return s.load(ctx, "browser.submit_form", domain.RequestSpec{
		Method:  f.method,
		URL:     action,
		Headers: domain.Headers{"Referer": s.page.URL},
		Body: domain.BodySpec{
			Type: domain.BodyForm,
			Form: f.values,
		},
	})
}

func (s *Session) FollowLink(ctx context.Context, text string) (domain.Page, error) {
	if s.doc == nil {
		return s.page, &domain.OpError{Op: "browser.follow_link", Kind: domain.KindNotFound, Err: errNoPage}
	}

	href, ok := findLink(s.doc, text)
	if !ok {
		return s.page, &domain.OpError{
			Op:   "browser.follow_link",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("%w: link %q", domain.ErrNotFound, text),
		}
	}

	target, err := s.resolve(href)
	if err != nil {
		return s.page, &domain.OpError{Op: "browser.follow_link", Kind: domain.KindInvalidConfig, Err: err}
	}

	s.log.Debug("browser.follow_link", "text", text, "url", target)
	return s.load(ctx, "browser.follow_link", domain.RequestSpec{
		Method:  domain.MethodGet,
		URL:     target,
		Headers: domain.Headers{"Referer": s.page.URL},
	})
}

func (s *Session) Content() domain.Page {
	return s.page
}

func (s *Session) load(ctx context.Context, op string, spec domain.RequestSpec) (domain.Page, error) {
	req, err := httpclient.BuildRequest(ctx, spec)
	if err != nil {
		return s.page, err
	}

	resp, err := s.exec.Do(ctx, req)
	if err != nil {
		return s.page, &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.BodyBytes))
	if err != nil {
		return s.page, &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
	}

	s.page = domain.Page{
		URL:        resp.FinalURL,
		StatusCode: resp.Status,
		HTML:       string(resp.BodyBytes),
	}
	s.doc = doc

	s.log.Debug("browser.loaded",
		"url", resp.FinalURL,
		"status", resp.Status,
		"bytes", len(resp.BodyBytes),
		"truncated", resp.Truncated,
		"duration_ms", resp.Duration.Milliseconds(),
	)

	if resp.Status >= http.StatusBadRequest {
		return s.page, &domain.OpError{
			Op:   op,
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("%w: %d from %s", errStatus, resp.Status, resp.FinalURL),
		}
	}
	return s.page, nil
}

// resolve makes ref absolute against the current page, honoring <base href>.
func (s *Session) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	if s.page.URL == "" {
		if ref == "" {
			return "", errNoPage
		}
		return "", fmt.Errorf("relative URL %q without a current page", ref)
	}

	base, err := url.Parse(s.page.URL)
	if err != nil {
		return "", err
	}
	if s.doc != nil {
		if href, ok := s.doc.Find("base[href]").First().Attr("href"); ok {
			if b, berr := base.Parse(strings.TrimSpace(href)); berr == nil {
				base = b
			}
		}
	}
	return base.ResolveReference(u).String(), nil
}
