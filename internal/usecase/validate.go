package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// Report is what a dry check found. It never holds the password.
type Report struct {
	Config      domain.Config
	HasPassword bool
	Metadata    domain.ProjectMetadata
	Remotes     []string
}

// Validate runs every local step of a run without network calls: it checks the
// configuration, the remote guard and metadata resolution.
type Validate struct {
	cfg      domain.Config
	vcs      ports.VCS
	metadata MetadataResolver
}

func NewValidate(cfg domain.Config, vcs ports.VCS, metadata MetadataResolver) *Validate {
	return &Validate{cfg: cfg, vcs: vcs, metadata: metadata}
}

func (uc *Validate) Execute(ctx context.Context, in RunInput) (Report, error) {
	rep := Report{Config: uc.cfg, HasPassword: uc.cfg.Password != ""}
	rep.Config.Password = ""

	if err := checkConfig(uc.cfg); err != nil {
		return rep, domain.Fail(domain.StageConfigNotFound, "invalid configuration in "+uc.cfg.Source, err)
	}

	remotes, err := uc.vcs.Remotes(ctx)
	if err != nil {
		return rep, domain.Fail(domain.StageRemoteConflict, "cannot list git remotes", err)
	}
	rep.Remotes = remotes
	if err := CheckRemotes(remotes); err != nil {
		return rep, err
	}

	meta, err := uc.metadata.Execute(ctx, in.Name, in.Description)
	if err != nil {
		return rep, err
	}
	rep.Metadata = meta

	return rep, nil
}

func checkConfig(cfg domain.Config) error {
	u, err := url.Parse(cfg.LoginPageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &domain.OpError{
			Op:   "config.validate",
			Kind: domain.KindInvalidConfig,
			Path: cfg.Source,
			Err:  fmt.Errorf("%s: %q is not an http(s) URL", domain.KeyLoginPage, cfg.LoginPageURL),
		}
	}
	if cfg.Account == "" {
		return &domain.OpError{
			Op:   "config.validate",
			Kind: domain.KindInvalidConfig,
			Path: cfg.Source,
			Err:  fmt.Errorf("%s is not set (or %s)", domain.KeyAccount, domain.EnvAccount),
		}
	}
	if cfg.RemoteAlias == "" || cfg.Branch == "" {
		return &domain.OpError{
			Op:   "config.validate",
			Kind: domain.KindInvalidConfig,
			Path: cfg.Source,
			Err:  fmt.Errorf("%s and %s must not be empty", domain.KeyRemoteName, domain.KeyBranch),
		}
	}
	return nil
}
