package httpclient

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

var errInvalidRequest = errors.New("invalid request spec")

// BuildRequest builds an HTTP request from a domain RequestSpec.
// GET requests carry form values in the query string, POST requests in an
// application/x-www-form-urlencoded body.
func BuildRequest(ctx context.Context, spec domain.RequestSpec) (*http.Request, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  errInvalidRequest,
		}
	}

	method := spec.Method
	if method == "" {
		method = domain.MethodGet
	}

	target := spec.URL
	var bodyReader *bytes.Reader
	contentType := ""

	switch spec.Body.Type {
	case domain.BodyNone, "":
		bodyReader = bytes.NewReader(nil)
	case domain.BodyForm:
		encoded := encodeForm(spec.Body.Form)
		if method == domain.MethodGet {
			u, err := url.Parse(spec.URL)
			if err != nil {
				return nil, &domain.OpError{
					Op:   "httpclient.build",
					Kind: domain.KindInvalidConfig,
					Err:  err,
				}
			}
			u.RawQuery = encoded
			target = u.String()
			bodyReader = bytes.NewReader(nil)
		} else {
			bodyReader = bytes.NewReader([]byte(encoded))
			contentType = "application/x-www-form-urlencoded"
		}
	default:
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  errInvalidRequest,
		}
	}

	req, err := http.NewRequestWithContext(ctx, string(method), target, bodyReader)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

// encodeForm keeps field order, unlike url.Values.Encode which sorts by key.
func encodeForm(form domain.FormValues) string {
	var b strings.Builder
	for i, f := range form {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}
