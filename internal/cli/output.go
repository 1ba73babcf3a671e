package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/ghrepo/internal/usecase"
)

// printDiagnostic writes the one-line failure report, in red on a terminal.
func printDiagnostic(w io.Writer, err error) {
	r := lipgloss.NewRenderer(w)
	style := r.NewStyle().Foreground(lipgloss.Color("196"))
	fmt.Fprintln(w, style.Render(diagnostic(err)))
}

// reportMarkdown renders a validation report as a markdown document.
func reportMarkdown(rep usecase.Report) string {
	var b strings.Builder

	b.WriteString("# ghrepo\n\n")
	b.WriteString("## Configuration\n\n")
	b.WriteString("| setting | value |\n|---|---|\n")
	row := func(k, v string) {
		if v == "" {
			v = "(unset)"
		}
		fmt.Fprintf(&b, "| %s | `%s` |\n", k, strings.ReplaceAll(v, "|", `\|`))
	}
	row("file", rep.Config.Source)
	row("login page", rep.Config.LoginPageURL)
	row("account", rep.Config.Account)
	if rep.HasPassword {
		row("password", "********")
	} else {
		row("password", "")
	}
	row("remote", rep.Config.RemoteAlias)
	row("branch", rep.Config.Branch)
	row("debug", fmt.Sprint(rep.Config.Debug))
	row("push delay", rep.Config.PushDelay.String())

	b.WriteString("\n## Project\n\n")
	b.WriteString("| field | value |\n|---|---|\n")
	row("name", rep.Metadata.Name)
	row("description", rep.Metadata.Description)
	row("homepage", rep.Metadata.HomepageURL)

	b.WriteString("\n## Remotes\n\n")
	if len(rep.Remotes) == 0 {
		b.WriteString("_none_\n")
	}
	for _, r := range rep.Remotes {
		fmt.Fprintf(&b, "- `%s`\n", r)
	}
	return b.String()
}

// printReport renders markdown on a terminal and prints it raw otherwise.
func (a *app) printReport(rep usecase.Report) error {
	md := reportMarkdown(rep)

	f, ok := a.out.(*os.File)
	if !ok || !a.isTerminal(f) {
		_, err := io.WriteString(a.out, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err = io.WriteString(a.out, rendered)
	return err
}
