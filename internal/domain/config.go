package domain

import "time"

const (
	DefaultLoginPageURL     = "https://github.com/login"
	DefaultRemoteAlias      = "origin"
	DefaultHomepageTemplate = "http://search.cpan.org/dist/{{name}}"
	DefaultLanguageTag      = "[Perl] "
	DefaultBranch           = "master"
	DefaultPushDelay        = 5 * time.Second
)

// Setting keys as they appear in the [github] section of the config file.
const (
	KeyLoginPage        = "login_page"
	KeyAccount          = "account"
	KeyPassword         = "password"
	KeyRemoteName       = "remote_name"
	KeyDebug            = "debug"
	KeyHomepageTemplate = "homepage_template"
	KeyLanguageTag      = "language_tag"
	KeyBranch           = "branch"
	KeyPushDelay        = "push_delay"
)

// Environment fallbacks for credentials.
const (
	EnvAccount  = "GITHUB_USER"
	EnvPassword = "GITHUB_PASS"
)

// Config is the resolved, read-only run configuration.
// It is built once at startup and passed by value.
type Config struct {
	LoginPageURL string
	Account      string
	Password     string
	RemoteAlias  string
	Debug        bool

	HomepageTemplate string
	LanguageTag      string
	Branch           string
	PushDelay        time.Duration

	// Source is the config file the settings were read from.
	Source string
}

// DefaultConfig returns the built-in defaults, the lowest precedence level.
func DefaultConfig() Config {
	return Config{
		LoginPageURL:     DefaultLoginPageURL,
		RemoteAlias:      DefaultRemoteAlias,
		HomepageTemplate: DefaultHomepageTemplate,
		LanguageTag:      DefaultLanguageTag,
		Branch:           DefaultBranch,
		PushDelay:        DefaultPushDelay,
	}
}

// ConfigFile is the raw content of a discovered config source.
type ConfigFile struct {
	Path   string
	Values map[string]string
}

// Lookup returns a non-empty value for key.
func (f ConfigFile) Lookup(key string) (string, bool) {
	if f.Values == nil {
		return "", false
	}
	v, ok := f.Values[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
