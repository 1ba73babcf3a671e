package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

// --- config sources ---

type fakeLocator struct {
	path string
	err  error
}

func (f fakeLocator) Locate() (string, error) { return f.path, f.err }

type fakeLoader struct {
	values map[string]string
	err    error
}

func (f fakeLoader) Load(path string) (domain.ConfigFile, error) {
	if f.err != nil {
		return domain.ConfigFile{}, f.err
	}
	return domain.ConfigFile{Path: path, Values: f.values}, nil
}

// --- version control ---

type fakeVCS struct {
	remotes    []string
	remotesErr error
	addErr     error
	pushErr    error

	added  [][2]string
	pushed [][2]string
}

func (f *fakeVCS) Remotes(_ context.Context) ([]string, error) {
	return f.remotes, f.remotesErr
}

func (f *fakeVCS) AddRemote(_ context.Context, alias, url string) error {
	f.added = append(f.added, [2]string{alias, url})
	return f.addErr
}

func (f *fakeVCS) Push(_ context.Context, alias, branch string) error {
	f.pushed = append(f.pushed, [2]string{alias, branch})
	return f.pushErr
}

// --- browser ---

// panicBrowser fails the test on any call.
type panicBrowser struct{ t *testing.T }

func (b panicBrowser) Navigate(_ context.Context, url string) (domain.Page, error) {
	b.t.Fatalf("unexpected Navigate(%q)", url)
	return domain.Page{}, nil
}

func (b panicBrowser) SubmitForm(_ context.Context, n int, _ map[string]string) (domain.Page, error) {
	b.t.Fatalf("unexpected SubmitForm(%d)", n)
	return domain.Page{}, nil
}

func (b panicBrowser) FollowLink(_ context.Context, text string) (domain.Page, error) {
	b.t.Fatalf("unexpected FollowLink(%q)", text)
	return domain.Page{}, nil
}

func (b panicBrowser) Content() domain.Page {
	b.t.Fatalf("unexpected Content()")
	return domain.Page{}
}

type submission struct {
	form   int
	fields map[string]string
}

// scriptedBrowser serves canned pages for the service's happy path. Individual
// pages and errors can be replaced per test.
type scriptedBrowser struct {
	login   domain.Page
	afterIn domain.Page
	newForm domain.Page
	created domain.Page

	navErr    error
	loginErr  error
	linkErr   error
	createErr error

	navigated []string
	submitted []submission
	followed  []string
	current   domain.Page
}

func newScriptedBrowser() *scriptedBrowser {
	return &scriptedBrowser{
		login:   domain.Page{URL: "https://example.test/login", StatusCode: 200, HTML: `<form><input type="submit" value="Log in"></form>`},
		afterIn: domain.Page{URL: "https://example.test/", StatusCode: 200, HTML: `<a href="/new">create a new one</a>`},
		newForm: domain.Page{URL: "https://example.test/new", StatusCode: 200, HTML: `<h1>Create a New Repository</h1>`},
		created: domain.Page{URL: "https://example.test/ada/Foo-Bar", StatusCode: 200, HTML: `<pre>git remote add origin git@example.test:ada/Foo-Bar.git
git push origin master</pre>`},
	}
}

func (b *scriptedBrowser) Navigate(_ context.Context, url string) (domain.Page, error) {
	b.navigated = append(b.navigated, url)
	if b.navErr != nil {
		return b.current, b.navErr
	}
	b.current = b.login
	return b.current, nil
}

func (b *scriptedBrowser) SubmitForm(_ context.Context, n int, fields map[string]string) (domain.Page, error) {
	b.submitted = append(b.submitted, submission{form: n, fields: fields})
	switch n {
	case LoginFormNumber:
		if b.loginErr != nil {
			return b.current, b.loginErr
		}
		b.current = b.afterIn
	case CreationFormNumber:
		if b.createErr != nil {
			return b.current, b.createErr
		}
		b.current = b.created
	}
	return b.current, nil
}

func (b *scriptedBrowser) FollowLink(_ context.Context, text string) (domain.Page, error) {
	b.followed = append(b.followed, text)
	if b.linkErr != nil {
		return b.current, b.linkErr
	}
	b.current = b.newForm
	return b.current, nil
}

func (b *scriptedBrowser) Content() domain.Page { return b.current }

// --- metadata ---

type fakeMetadata struct {
	meta  domain.ProjectMetadata
	err   error
	calls int
}

func (f *fakeMetadata) Execute(_ context.Context, name, desc string) (domain.ProjectMetadata, error) {
	f.calls++
	if f.err != nil {
		return domain.ProjectMetadata{}, f.err
	}
	m := f.meta
	if name != "" {
		m.Name = name
	}
	if desc != "" {
		m.Description = desc
	}
	return m, nil
}

// noFilesReader fails the test if the metadata file is looked up.
type noFilesReader struct{ t *testing.T }

func (r noFilesReader) Find(root string) (string, error) {
	r.t.Fatalf("unexpected Find(%q)", root)
	return "", nil
}

func (r noFilesReader) FindGenerated(root string) (string, error) {
	r.t.Fatalf("unexpected FindGenerated(%q)", root)
	return "", nil
}

func (r noFilesReader) Read(path string) (domain.MetaDocument, error) {
	r.t.Fatalf("unexpected Read(%q)", path)
	return domain.MetaDocument{}, nil
}

// --- processes ---

// scriptedRunner records commands and runs an optional side effect per command line.
type scriptedRunner struct {
	effects  map[string]func(dir string) int
	startErr error
	ran      []string
}

func (r *scriptedRunner) Run(_ context.Context, cmd domain.Command) (domain.ProcessResult, error) {
	line := cmd.String()
	r.ran = append(r.ran, line)
	if r.startErr != nil {
		return domain.ProcessResult{}, r.startErr
	}
	if fn, ok := r.effects[line]; ok {
		code := fn(cmd.Dir)
		out := []byte("ok\n")
		if code != 0 {
			out = []byte("Checking prerequisites...\nWarning: prerequisite Foo::Dep 0 not found.\n")
		}
		return domain.ProcessResult{ExitCode: code, Output: out}, nil
	}
	return domain.ProcessResult{ExitCode: 0}, nil
}

type recordingObserver struct {
	transitions []domain.Transition
}

func (o *recordingObserver) OnTransition(tr domain.Transition) {
	o.transitions = append(o.transitions, tr)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

type fakeStore struct {
	saved []domain.RunRecord
	err   error
}

func (s *fakeStore) SaveRun(run domain.RunRecord) (string, error) {
	s.saved = append(s.saved, run)
	return "run-123", s.err
}
