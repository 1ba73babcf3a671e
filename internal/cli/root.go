package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/infra/logger"
	"github.com/aalvaropc/ghrepo/internal/ports"
	"github.com/aalvaropc/ghrepo/internal/ui/tui"
	"github.com/aalvaropc/ghrepo/internal/usecase"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp()
	cmd := newRootCmd(a)
	err := cmd.ExecuteContext(ctx)
	a.close()

	if err != nil {
		printDiagnostic(a.errOut, err)
		stop()
		os.Exit(1)
	}
}

// flags are shared by the root command and `validate`.
type flags struct {
	name      string
	desc      string
	debug     bool
	remote    string
	loginPage string
	account   string
	logDebug  bool
}

func newRootCmd(a *app) *cobra.Command {
	var f flags
	var useTUI, noSave bool

	cmd := &cobra.Command{
		Use:   "ghrepo",
		Short: "Create the GitHub repository for a local project and push it",
		Long: `ghrepo logs in to the hosting site, creates a public repository named after
the project (from --name or META.yml), adds it as a git remote and pushes.

Settings are read from .ghrepo.ini in the working directory or in $HOME.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.setupLogger(f.logDebug)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			if cfg, err = a.ensurePassword(cfg); err != nil {
				return err
			}

			in := usecase.RunInput{Name: f.name, Description: f.desc}
			run := func(ctx context.Context, obs ports.StageObserver) (domain.RemoteReference, error) {
				return a.createRepo(cfg, obs, !noSave).Execute(ctx, in)
			}

			var ref domain.RemoteReference
			if useTUI && a.isTerminal(os.Stdout) {
				ref, err = tui.Run(cmd.Context(), tui.Deps{
					Project: f.name,
					Account: cfg.Account,
					Run:     run,
					Logger:  a.log,
					Debug:   cfg.Debug,
					LogPath: logger.Path(),
				})
			} else {
				ref, err = run(cmd.Context(), progressPrinter{w: a.errOut})
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, ref.CloneURL)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.name, "name", "n", "", "repository name (default: name from META.yml)")
	pf.StringVarP(&f.desc, "desc", "d", "", "repository description (default: abstract from META.yml)")
	pf.BoolVar(&f.debug, "debug", false, "stop before the repository is created")
	pf.StringVar(&f.remote, "remote", "", "git remote to add (default \"origin\")")
	pf.StringVar(&f.loginPage, "login-page", "", "login page URL (default \""+domain.DefaultLoginPageURL+"\")")
	pf.StringVar(&f.account, "account", "", "account to log in with")
	pf.BoolVar(&f.logDebug, "log-debug", false, "verbose logging to the ghrepo log file")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show progress in an interactive view")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record this run under the ghrepo cache directory")

	cmd.AddCommand(
		initCmd(a),
		validateCmd(a, &f),
		versionCmd(a),
	)
	return cmd
}

// overrides maps the flags the operator actually set to config overrides.
func overrides(fs *pflag.FlagSet, f flags) usecase.Overrides {
	var ov usecase.Overrides

	if fs.Changed("login-page") {
		ov.LoginPageURL = &f.loginPage
	}
	if fs.Changed("account") {
		ov.Account = &f.account
	}
	if fs.Changed("remote") {
		ov.RemoteAlias = &f.remote
	}
	if fs.Changed("debug") {
		ov.Debug = &f.debug
	}
	return ov
}

// diagnostic renders the single line printed for a failed run.
func diagnostic(err error) string {
	var fail *domain.Failure
	if errors.As(err, &fail) {
		return "ghrepo: " + fail.Error()
	}
	return "ghrepo: " + err.Error()
}

type progressPrinter struct {
	w io.Writer
}

func (p progressPrinter) OnTransition(tr domain.Transition) {
	fmt.Fprintf(p.w, "ghrepo: %s\n", tr.To)
}
