package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aalvaropc/ghrepo/internal/buildinfo"
	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/infra/browser"
	"github.com/aalvaropc/ghrepo/internal/infra/gitcli"
	"github.com/aalvaropc/ghrepo/internal/infra/httpclient"
	"github.com/aalvaropc/ghrepo/internal/infra/inifile"
	"github.com/aalvaropc/ghrepo/internal/infra/logger"
	"github.com/aalvaropc/ghrepo/internal/infra/metafile"
	"github.com/aalvaropc/ghrepo/internal/infra/process"
	"github.com/aalvaropc/ghrepo/internal/infra/runstore"
	"github.com/aalvaropc/ghrepo/internal/ports"
	"github.com/aalvaropc/ghrepo/internal/usecase"
)

// app holds the process-level collaborators. Tests replace them.
type app struct {
	out    io.Writer
	errOut io.Writer

	workDir   string
	homeDir   string
	lookupEnv func(string) (string, bool)

	runner     ports.ProcessRunner
	newBrowser func(log *slog.Logger) ports.Browser

	isTerminal   func(f *os.File) bool
	readPassword func() (string, error)

	// noLogFile keeps tests from writing into the user cache directory.
	noLogFile bool
	// dataDir receives run records under runs/. Empty disables them.
	dataDir string
	log       *slog.Logger
	cleanup   func() error
}

func newApp() *app {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)
	home, _ := os.UserHomeDir()

	a := &app{
		out:       os.Stdout,
		errOut:    os.Stderr,
		workDir:   wd,
		homeDir:   home,
		lookupEnv: os.LookupEnv,
		newBrowser: func(log *slog.Logger) ports.Browser {
			exec := httpclient.NewExecutor(httpclient.WithUserAgent(buildinfo.UserAgent()))
			return browser.New(browser.WithExecutor(exec), browser.WithLogger(log))
		},
		isTerminal: func(f *os.File) bool {
			return term.IsTerminal(int(f.Fd()))
		},
		readPassword: func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			return string(b), err
		},
		log:     logger.L(),
		dataDir: logger.DefaultRoot(),
	}
	return a
}

func (a *app) setupLogger(debug bool) {
	if a.noLogFile {
		return
	}
	cleanup, err := logger.Setup(logger.Config{Debug: debug})
	if err != nil {
		fmt.Fprintf(a.errOut, "ghrepo: logging disabled: %v\n", err)
	}
	a.cleanup = cleanup
	a.log = logger.L()
}

func (a *app) close() {
	if a.cleanup != nil {
		_ = a.cleanup()
	}
}

func (a *app) processRunner() ports.ProcessRunner {
	if a.runner == nil {
		a.runner = process.New(process.WithLogger(a.log))
	}
	return a.runner
}

func (a *app) resolveConfig(cmd *cobra.Command, f flags) (domain.Config, error) {
	uc := usecase.NewResolveConfig(
		inifile.NewFinder(a.workDir, a.homeDir),
		inifile.NewLoader(),
		usecase.WithLookupEnv(a.lookupEnv),
	)
	cfg, err := uc.Execute(overrides(cmd.Flags(), f))
	if err != nil {
		return domain.Config{}, err
	}

	a.log.Info("config.resolved",
		slog.String("source", cfg.Source),
		slog.String("login_page", cfg.LoginPageURL),
		slog.String("account", cfg.Account),
		slog.String("remote", cfg.RemoteAlias),
		slog.Bool("debug", cfg.Debug),
	)
	return cfg, nil
}

// ensurePassword asks for the password when none is configured and stdin is a terminal.
func (a *app) ensurePassword(cfg domain.Config) (domain.Config, error) {
	if cfg.Password != "" || !a.isTerminal(os.Stdin) {
		return cfg, nil
	}

	fmt.Fprintf(a.errOut, "Password for %s: ", cfg.Account)
	pw, err := a.readPassword()
	fmt.Fprintln(a.errOut)
	if err != nil {
		return cfg, fmt.Errorf("read password: %w", err)
	}
	cfg.Password = pw
	return cfg, nil
}

func (a *app) vcs() ports.VCS {
	return gitcli.New(a.workDir, a.processRunner())
}

func (a *app) metadata(cfg domain.Config) *usecase.ResolveMetadata {
	return usecase.NewResolveMetadata(
		a.workDir,
		cfg,
		metafile.NewReader(),
		a.processRunner(),
		usecase.WithMetadataLogger(a.log),
	)
}

func (a *app) createRepo(cfg domain.Config, obs ports.StageObserver, save bool) *usecase.CreateRepo {
	opts := []usecase.CreateRepoOption{
		usecase.WithObserver(obs),
		usecase.WithLogger(a.log),
	}
	if save && a.dataDir != "" {
		opts = append(opts, usecase.WithStore(runstore.NewJSONStore(a.dataDir, runstore.WithIndex(true))))
	}
	return usecase.NewCreateRepo(cfg, a.vcs(), a.newBrowser(a.log), a.metadata(cfg), opts...)
}
