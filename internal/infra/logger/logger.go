// Package logger owns the process-wide slog logger. Setup points it at
// <root>/logs/ghrepo.log; until then, and after a failed Setup, it discards.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	fileName = "ghrepo.log"

	// DefaultMaxBytes is the size above which Setup moves the log to ghrepo.log.1.
	DefaultMaxBytes int64 = 1 << 20

	redacted = "[redacted]"
)

// Attribute keys whose values never reach the log file.
var secretKeys = map[string]bool{
	"password":      true,
	"pass":          true,
	"token":         true,
	"cookie":        true,
	"authorization": true,
}

type Config struct {
	// Root receives logs/ghrepo.log. Empty means DefaultRoot().
	Root  string
	Debug bool
	// MaxBytes of the previous log before it is rotated. Zero means DefaultMaxBytes.
	MaxBytes int64
}

var (
	mu      sync.RWMutex
	global  = discard()
	logFile *os.File
	logPath string
)

func Setup(cfg Config) (func() error, error) {
	root := cfg.Root
	if root == "" {
		root = DefaultRoot()
	}
	dir := filepath.Join(filepath.Clean(root), "logs")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		reset()
		return nil, err
	}

	path := filepath.Join(dir, fileName)
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := rotate(path, maxBytes); err != nil {
		reset()
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: scrub}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	l := slog.New(slog.NewJSONHandler(f, opts))

	mu.Lock()
	global = l
	logFile = f
	logPath = path
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		global = discard()
		return cerr
	}
	return cleanup, nil
}

// DefaultRoot is the per-user cache directory for ghrepo, falling back to the
// working directory when no cache directory is available.
func DefaultRoot() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return ".ghrepo"
	}
	return filepath.Join(dir, "ghrepo")
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Path is the current log file, or "" when logging is discarded.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// rotate keeps a single previous generation.
func rotate(path string, maxBytes int64) error {
	st, err := os.Stat(path)
	if err != nil || st.Size() <= maxBytes {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("rotate %s: %w", path, err)
	}
	return nil
}

// scrub writes times in UTC and keeps credentials out of the file.
func scrub(_ []string, a slog.Attr) slog.Attr {
	switch {
	case a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime:
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	case secretKeys[strings.ToLower(a.Key)]:
		a.Value = slog.StringValue(redacted)
	case a.Value.Kind() == slog.KindString:
		a.Value = slog.StringValue(maskUserinfo(a.Value.String()))
	}
	return a
}

// maskUserinfo hides the password of a URL such as https://user:pw@host/.
func maskUserinfo(s string) string {
	if !strings.Contains(s, "://") || !strings.Contains(s, "@") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	if _, ok := u.User.Password(); !ok {
		return s
	}
	u.User = url.User(u.User.Username())
	return strings.Replace(u.String(), "@", ":"+redacted+"@", 1)
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	global = discard()
	logFile = nil
	logPath = ""
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
