package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/infra/httpclient"
)

const loginHTML = `<html><body>
<form action="/search" method="get"><input name="q"></form>
<form action="/session" method="post">
  <input type="hidden" name="authenticity_token" value="tok-1">
  <input type="text" name="login">
  <input type="password" name="password">
  <input type="checkbox" name="remember" value="yes">
  <input type="submit" name="commit" value="Log in">
</form>
</body></html>`

func newFakeService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "_sess", Value: "anon", Path: "/"})
		fmt.Fprint(w, loginHTML)
	})
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		if c, err := r.Cookie("_sess"); err != nil || c.Value != "anon" {
			http.Error(w, "no session cookie", http.StatusForbidden)
			return
		}
		if r.PostForm.Get("authenticity_token") != "tok-1" {
			http.Error(w, "csrf", http.StatusUnprocessableEntity)
			return
		}
		if _, ok := r.PostForm["remember"]; ok {
			http.Error(w, "unchecked box was sent", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("commit") != "Log in" || r.PostForm.Get("password") != "secret" {
			fmt.Fprint(w, "<p>Incorrect login or password.</p>")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "_sess", Value: "user-" + r.PostForm.Get("login"), Path: "/"})
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("_sess")
		if err != nil || !strings.HasPrefix(c.Value, "user-") {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		fmt.Fprint(w, `<p>No repositories yet, <a href="repositories/new">
			create   a new one</a>.</p><a href="/other">create a new one later</a>`)
	})
	mux.HandleFunc("/repositories/new", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<h1>Create a New Repository</h1><p>referer=%s</p>
<form action="/search"><input name="q"></form>
<form action="/repositories" method="POST">
  <input type="hidden" name="authenticity_token" value="tok-2">
  <input name="repository[name]">
  <textarea name="repository[description]">default desc</textarea>
  <select name="repository[visibility]"><option value="public">Public</option><option value="private" selected>Private</option></select>
  <input type="radio" name="repository[public]" value="true">
  <input type="radio" name="repository[public]" value="false" checked>
  <input name="repository[disabled]" value="x" disabled>
  <input type="submit" name="commit" value="Create repository">
</form>`, r.Header.Get("Referer"))
	})
	mux.HandleFunc("/repositories", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		var b strings.Builder
		for _, k := range []string{"authenticity_token", "repository[name]", "repository[description]", "repository[visibility]", "repository[public]", "repository[disabled]", "commit"} {
			fmt.Fprintf(&b, "%s=%s;", k, strings.Join(r.PostForm[k], ","))
		}
		fmt.Fprint(w, b.String())
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSession_LoginFlow(t *testing.T) {
	srv := newFakeService(t)
	ctx := context.Background()
	s := New()

	page, err := s.Navigate(ctx, srv.URL+"/login")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !page.Contains("Log in") {
		t.Fatalf("expected login page, got %q", page.HTML)
	}

	page, err = s.SubmitForm(ctx, 2, map[string]string{
		"login":    "ada",
		"password": "secret",
		"commit":   "Log in",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !page.Contains("create") {
		t.Fatalf("expected dashboard, got %q", page.HTML)
	}
	if !strings.HasSuffix(page.URL, "/dashboard") {
		t.Fatalf("expected redirect to /dashboard, got %s", page.URL)
	}

	page, err = s.FollowLink(ctx, "create a new one")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if !page.Contains("Create a New Repository") {
		t.Fatalf("expected creation form, got %q", page.HTML)
	}
	if !page.Contains("referer=" + srv.URL + "/dashboard") {
		t.Fatalf("expected Referer of previous page, got %q", page.HTML)
	}
	if s.Content().URL != page.URL {
		t.Fatalf("expected Content to return the current page")
	}
}

func TestSession_SubmitFormPrefillsControls(t *testing.T) {
	srv := newFakeService(t)
	ctx := context.Background()
	s := New()

	if _, err := s.Navigate(ctx, srv.URL+"/repositories/new"); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	page, err := s.SubmitForm(ctx, 2, map[string]string{
		"repository[name]":   "Foo-Bar",
		"repository[public]": "true",
		"commit":             "Create repository",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := "authenticity_token=tok-2;repository[name]=Foo-Bar;repository[description]=default desc;" +
		"repository[visibility]=private;repository[public]=true;repository[disabled]=;commit=Create repository;"
	if page.HTML != want {
		t.Fatalf("unexpected submission:\n got %q\nwant %q", page.HTML, want)
	}
}

func TestSession_FormAndLinkNotFound(t *testing.T) {
	srv := newFakeService(t)
	ctx := context.Background()
	s := New()

	if _, err := s.SubmitForm(ctx, 1, nil); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound before any page, got %v", err)
	}

	if _, err := s.Navigate(ctx, srv.URL+"/login"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if _, err := s.SubmitForm(ctx, 3, nil); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound for missing form, got %v", err)
	}
	if _, err := s.FollowLink(ctx, "nowhere"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound for missing link, got %v", err)
	}
}

func TestSession_WithExecutor(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<p>Log in</p>")
	}))
	t.Cleanup(srv.Close)

	exec := httpclient.NewExecutor(httpclient.WithUserAgent("ghrepo/test"))
	s := New(WithExecutor(exec))

	if _, err := s.Navigate(context.Background(), srv.URL); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got != "ghrepo/test" {
		t.Fatalf("expected the executor's user agent, got %q", got)
	}
}

func TestSession_HTTPErrorStatus(t *testing.T) {
	srv := newFakeService(t)
	s := New()

	page, err := s.Navigate(context.Background(), srv.URL+"/broken")
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected KindExecution, got %v", err)
	}
	if page.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected page status 500 kept, got %d", page.StatusCode)
	}
}

func TestSession_ResolveRelativeAndBase(t *testing.T) {
	s := New()
	s.page = domain.Page{URL: "https://example.com/a/b"}

	got, err := s.resolve("../c?x=1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "https://example.com/c?x=1" {
		t.Fatalf("unexpected resolve: %s", got)
	}

	got, err = s.resolve("")
	if err != nil || got != "https://example.com/a/b" {
		t.Fatalf("expected empty ref to resolve to page, got %q %v", got, err)
	}

	empty := New()
	if _, err := empty.resolve("/relative"); err == nil {
		t.Fatalf("expected error for relative URL without page")
	}

	u, _ := url.Parse("https://example.com/abs")
	if got, _ := empty.resolve(u.String()); got != "https://example.com/abs" {
		t.Fatalf("expected absolute passthrough, got %s", got)
	}
}
