package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("expected model, got %T", next)
	}
	return mm, cmd
}

func transition(from, to domain.State) transitionMsg {
	return transitionMsg{tr: domain.Transition{From: from, To: to}}
}

func TestModel_TracksTransitions(t *testing.T) {
	m := newModel(Deps{Project: "Foo-Bar"}, nil)

	m, _ = update(t, m, transition(domain.StateStart, domain.StateLoginPageLoaded))
	m, _ = update(t, m, transition(domain.StateLoginPageLoaded, domain.StateLoggedIn))
	if m.completed != 3 {
		t.Fatalf("expected 3 completed steps, got %d", m.completed)
	}

	view := m.View()
	if !strings.Contains(view, "Foo-Bar") || !strings.Contains(view, "Open new repository form") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestModel_ShowsResolvedProject(t *testing.T) {
	m := newModel(Deps{Account: "ada", Debug: true}, nil)
	if strings.Contains(m.View(), "Foo-Bar") {
		t.Fatalf("project shown before it was resolved:\n%s", m.View())
	}

	m, _ = update(t, m, projectMsg{meta: domain.ProjectMetadata{Name: "Foo-Bar"}})

	view := m.View()
	if !strings.Contains(view, "Foo-Bar") {
		t.Fatalf("expected resolved project in header:\n%s", view)
	}
	if !strings.Contains(view, "debug run") {
		t.Fatalf("expected debug subtitle:\n%s", view)
	}
}

func TestModel_FailureNamesLogFile(t *testing.T) {
	m := newModel(Deps{LogPath: "/tmp/ghrepo/logs/ghrepo.log"}, nil)
	m, _ = update(t, m, runDoneMsg{err: domain.Fail(domain.StageLoginFailed, "", nil)})
	if !strings.Contains(m.View(), "/tmp/ghrepo/logs/ghrepo.log") {
		t.Fatalf("expected log path in view:\n%s", m.View())
	}
}

func TestModel_DoneSuccess(t *testing.T) {
	m := newModel(Deps{}, nil)
	ref := domain.RemoteReference{Alias: "origin", CloneURL: "git@example.test:ada/x.git"}

	m, cmd := update(t, m, runDoneMsg{ref: ref})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.completed != len(steps) {
		t.Fatalf("expected all steps completed, got %d", m.completed)
	}
	if !strings.Contains(m.View(), ref.CloneURL) {
		t.Fatalf("clone URL missing from view:\n%s", m.View())
	}
}

func TestModel_DoneFailure(t *testing.T) {
	m := newModel(Deps{}, nil)
	m, _ = update(t, m, transition(domain.StateStart, domain.StateLoginPageLoaded))
	m, _ = update(t, m, runDoneMsg{err: domain.Fail(domain.StageLoginFailed, "expected marker", nil)})

	view := m.View()
	if !strings.Contains(view, "Login failed") || !strings.Contains(view, "✗") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestModel_DebugHalt(t *testing.T) {
	m := newModel(Deps{Debug: true}, nil)
	m, _ = update(t, m, transition(domain.StateCreationFormLoaded, domain.StateDebugHalt))
	if !m.halted || m.completed != 0 {
		t.Fatalf("debug halt must not count as progress: halted=%v completed=%d", m.halted, m.completed)
	}
	if !strings.Contains(m.View(), "debug") {
		t.Fatalf("expected debug notice:\n%s", m.View())
	}
}

func TestModel_QuitCancelsRun(t *testing.T) {
	cancelled := false
	m := newModel(Deps{}, func() { cancelled = true })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled || !m.quitting {
		t.Fatalf("expected cancellation")
	}
	if cmd != nil {
		t.Fatalf("must wait for the workflow before quitting")
	}

	m, _ = update(t, m, runDoneMsg{err: domain.Fail(domain.StageLoginFailed, "", context.Canceled)})
	if !errors.Is(m.err, errCancelled) {
		t.Fatalf("expected cancellation to be reported, got %v", m.err)
	}
}
