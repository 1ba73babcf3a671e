package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

var errCancelled = errors.New("cancelled by operator")

type model struct {
	theme   Theme
	keys    keyMap
	deps    Deps
	spinner spinner.Model
	cancel  context.CancelFunc

	// project starts as the explicit name and is replaced by the resolved one.
	project string

	// completed counts finished entries of steps.
	completed int
	halted    bool
	quitting  bool

	done bool
	ref  domain.RemoteReference
	err  error

	width int
}

// Run shows run progress while deps.Run executes in a background goroutine.
// It returns the workflow's own result; quitting the view cancels the workflow
// and waits for it to return.
func Run(ctx context.Context, deps Deps) (domain.RemoteReference, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(wrapSafe(newModel(deps, cancel), deps.Logger), tea.WithContext(ctx))

	result := make(chan runDoneMsg, 1)
	go func() {
		ref, err := deps.Run(runCtx, observer{send: p.Send})
		msg := runDoneMsg{ref: ref, err: err}
		result <- msg
		p.Send(msg)
	}()

	_, progErr := p.Run()
	cancel()
	res := <-result

	if res.err == nil && progErr != nil && !errors.Is(progErr, tea.ErrProgramKilled) {
		return res.ref, fmt.Errorf("progress view: %w", progErr)
	}
	return res.ref, res.err
}

// observer forwards transitions from the workflow goroutine to the program.
type observer struct {
	send func(tea.Msg)
}

func (o observer) OnTransition(tr domain.Transition) {
	o.send(transitionMsg{tr: tr})
}

func (o observer) OnProject(meta domain.ProjectMetadata) {
	o.send(projectMsg{meta: meta})
}

var (
	_ ports.StageObserver   = observer{}
	_ ports.ProjectObserver = observer{}
)

func newModel(deps Deps, cancel context.CancelFunc) model {
	t := DefaultTheme()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("63"))),
	)

	return model{
		theme:   t,
		keys:    defaultKeyMap(),
		deps:    deps,
		spinner: sp,
		cancel:  cancel,
		project: deps.Project,
	}
}

func (m model) Init() tea.Cmd { return m.spinner.Tick }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if m.done {
				return m, tea.Quit
			}
			// Keep the view up until the workflow notices the cancellation.
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case projectMsg:
		m.project = msg.meta.Name
		return m, nil

	case transitionMsg:
		if msg.tr.To == domain.StateDebugHalt {
			m.halted = true
			return m, nil
		}
		if i := stepIndex(msg.tr.To); i >= 0 && i+1 > m.completed {
			m.completed = i + 1
		}
		return m, nil

	case runDoneMsg:
		m.done = true
		m.ref = msg.ref
		m.err = msg.err
		if m.quitting && errors.Is(m.err, context.Canceled) {
			m.err = fmt.Errorf("%w: %w", errCancelled, m.err)
		}
		if m.err == nil {
			m.completed = len(steps)
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	title := "ghrepo"
	if m.project != "" {
		title += " · " + m.project
	}
	header := m.theme.Title.Render(title) + "\n"

	var sub []string
	if m.deps.Account != "" {
		sub = append(sub, "account "+m.deps.Account)
	}
	if m.deps.Debug {
		sub = append(sub, "debug run, nothing will be created")
	}
	if len(sub) > 0 {
		header += m.theme.Subtitle.Render(strings.Join(sub, " · ")) + "\n"
	}

	var b strings.Builder
	for i, st := range steps {
		var mark string
		label := st.label
		switch {
		case i < m.completed:
			mark = m.theme.Done.Render("✓")
		case i == m.completed && m.done && m.err != nil:
			mark = m.theme.Failed.Render("✗")
		case i == m.completed && !m.done:
			mark = m.spinner.View()
		default:
			mark = m.theme.Pending.Render("·")
			label = m.theme.Pending.Render(label)
		}
		b.WriteString(mark + " " + label + "\n")
	}

	body := header + "\n" + b.String()

	switch {
	case m.done && m.err == nil:
		body += "\n" + m.theme.Card.Render(fmt.Sprintf("%s\n\n%s %s",
			m.theme.Done.Render("Repository created"),
			m.ref.Alias,
			m.ref.CloneURL,
		))
	case m.done:
		msg := userMessage(m.err)
		if m.width > 8 {
			msg = clampString(msg, m.width-8)
		}
		details := "details: ghrepo log file"
		if m.deps.LogPath != "" {
			details = "details: " + m.deps.LogPath
		}
		body += "\n" + m.theme.Card.Render(m.theme.Failed.Render(msg)+"\n\n"+m.theme.Help.Render(details))
	case m.halted:
		body += "\n" + m.theme.Help.Render("debug: stopping before the repository is created")
	case m.quitting:
		body += "\n" + m.theme.Help.Render("cancelling…")
	default:
		body += "\n" + m.theme.Help.Render(m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc)
	}

	return wrap.Render(body)
}
