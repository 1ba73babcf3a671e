package inifile

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

//go:embed templates/ghrepo.ini
var templatesFS embed.FS

// Initializer writes a starter config file.
type Initializer struct {
	// Gitignore adds the config file to dir/.gitignore, for project-local configs.
	Gitignore bool
}

func NewInitializer(gitignore bool) *Initializer {
	return &Initializer{Gitignore: gitignore}
}

var _ ports.ConfigInitializer = (*Initializer)(nil)

// Init writes dir/.ghrepo.ini with mode 0600. An existing file is kept unless force.
func (i *Initializer) Init(dir string, force bool) (string, error) {
	root := filepath.Clean(dir)
	dst := filepath.Join(root, FileName)

	if i.Gitignore {
		if err := ensureGitignore(root); err != nil {
			return dst, &domain.OpError{Op: "inifile.init", Kind: domain.KindExecution, Path: root, Err: err}
		}
	}

	if !force {
		if _, err := os.Stat(dst); err == nil {
			return dst, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return dst, &domain.OpError{Op: "inifile.init", Kind: domain.KindExecution, Path: dst, Err: err}
		}
	}

	b, err := fs.ReadFile(templatesFS, "templates/ghrepo.ini")
	if err != nil {
		return dst, &domain.OpError{Op: "inifile.init", Kind: domain.KindExecution, Err: err}
	}

	if err := os.WriteFile(dst, b, 0o600); err != nil {
		return dst, &domain.OpError{Op: "inifile.init", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(dst, 0o600); err != nil {
		return dst, &domain.OpError{Op: "inifile.init", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return dst, nil
}

func ensureGitignore(root string) error {
	const header = "# ghrepo"
	entries := []string{FileName}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[strings.TrimPrefix(trimmed, "/")] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 32)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
