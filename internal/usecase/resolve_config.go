package usecase

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// Overrides are values given explicitly on the command line.
// A nil field was not given and falls through to the next precedence level.
type Overrides struct {
	LoginPageURL *string
	Account      *string
	Password     *string
	RemoteAlias  *string
	Debug        *bool
}

type ResolveConfig struct {
	locator   ports.ConfigLocator
	loader    ports.ConfigLoader
	lookupEnv func(string) (string, bool)
}

type ResolveConfigOption func(*ResolveConfig)

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) ResolveConfigOption {
	return func(uc *ResolveConfig) {
		if fn != nil {
			uc.lookupEnv = fn
		}
	}
}

func NewResolveConfig(locator ports.ConfigLocator, loader ports.ConfigLoader, opts ...ResolveConfigOption) *ResolveConfig {
	uc := &ResolveConfig{
		locator:   locator,
		loader:    loader,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute builds the run configuration: explicit > file > environment > default.
func (uc *ResolveConfig) Execute(ov Overrides) (domain.Config, error) {
	path, err := uc.locator.Locate()
	if err != nil {
		return domain.Config{}, domain.Fail(domain.StageConfigNotFound, "no .ghrepo.ini in the working directory or home directory", err)
	}

	file, err := uc.loader.Load(path)
	if err != nil {
		return domain.Config{}, domain.Fail(domain.StageConfigNotFound, "cannot read "+path, err)
	}

	cfg, err := uc.merge(file, ov)
	if err != nil {
		return domain.Config{}, domain.Fail(domain.StageConfigNotFound, "invalid setting in "+path, err)
	}
	return cfg, nil
}

func (uc *ResolveConfig) merge(file domain.ConfigFile, ov Overrides) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.Source = file.Path

	pick := func(dst *string, explicit *string, key, env string) {
		if explicit != nil {
			*dst = *explicit
			return
		}
		if v, ok := file.Lookup(key); ok {
			*dst = v
			return
		}
		if env == "" {
			return
		}
		if v, ok := uc.lookupEnv(env); ok && v != "" {
			*dst = v
		}
	}

	pick(&cfg.LoginPageURL, ov.LoginPageURL, domain.KeyLoginPage, "")
	pick(&cfg.Account, ov.Account, domain.KeyAccount, domain.EnvAccount)
	pick(&cfg.Password, ov.Password, domain.KeyPassword, domain.EnvPassword)
	pick(&cfg.RemoteAlias, ov.RemoteAlias, domain.KeyRemoteName, "")
	pick(&cfg.HomepageTemplate, nil, domain.KeyHomepageTemplate, "")
	pick(&cfg.LanguageTag, nil, domain.KeyLanguageTag, "")
	pick(&cfg.Branch, nil, domain.KeyBranch, "")

	switch {
	case ov.Debug != nil:
		cfg.Debug = *ov.Debug
	default:
		if v, ok := file.Lookup(domain.KeyDebug); ok {
			b, err := parseBool(v)
			if err != nil {
				return domain.Config{}, invalidSetting(file.Path, domain.KeyDebug, err)
			}
			cfg.Debug = b
		}
	}

	if v, ok := file.Lookup(domain.KeyPushDelay); ok {
		d, err := parseDelay(v)
		if err != nil {
			return domain.Config{}, invalidSetting(file.Path, domain.KeyPushDelay, err)
		}
		cfg.PushDelay = d
	}

	// git receives these as arguments once the repository already exists.
	if err := checkGitName(cfg.RemoteAlias); err != nil {
		return domain.Config{}, invalidSetting(file.Path, domain.KeyRemoteName, err)
	}
	if err := checkGitName(cfg.Branch); err != nil {
		return domain.Config{}, invalidSetting(file.Path, domain.KeyBranch, err)
	}

	return cfg, nil
}

// checkGitName rejects remote and branch names git would misread.
func checkGitName(s string) error {
	switch {
	case s == "":
		return errors.New("empty value")
	case strings.HasPrefix(s, "-"):
		return fmt.Errorf("%q starts with '-'", s)
	case strings.IndexFunc(s, unicode.IsControl) >= 0:
		return fmt.Errorf("%q contains a control character", s)
	}
	return nil
}

// parseBool accepts 1/0, true/false, yes/no and on/off in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}

// parseDelay accepts a Go duration ("5s", "1m") or a plain number of seconds.
func parseDelay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative delay %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative delay %s", d)
	}
	return d, nil
}

func invalidSetting(path, key string, err error) error {
	return &domain.OpError{
		Op:   "config.resolve",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, key, err),
	}
}
