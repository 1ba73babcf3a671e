// Package metafile reads CPAN-style distribution metadata (META.yml, META.json).
package metafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

const (
	YAMLName = "META.yml"
	JSONName = "META.json"
)

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

var _ ports.MetadataReader = (*Reader)(nil)

// Find prefers META.yml over META.json in root.
func (r *Reader) Find(root string) (string, error) {
	for _, name := range []string{YAMLName, JSONName} {
		p := filepath.Join(root, name)
		if isFile(p) {
			return p, nil
		}
	}
	return "", &domain.OpError{
		Op:   "metafile.find",
		Kind: domain.KindNotFound,
		Path: filepath.Join(root, YAMLName),
		Err:  domain.ErrNotFound,
	}
}

// FindGenerated returns the most recently written <dir>/META.yml one level below
// root, which is where `make metafile` leaves it.
func (r *Reader) FindGenerated(root string) (string, error) {
	if p, err := r.Find(root); err == nil {
		return p, nil
	}

	matches, err := filepath.Glob(filepath.Join(root, "*", YAMLName))
	if err != nil {
		return "", &domain.OpError{Op: "metafile.find_generated", Kind: domain.KindExecution, Path: root, Err: err}
	}

	var best string
	var bestMod int64
	for _, m := range matches {
		info, statErr := os.Stat(m)
		if statErr != nil || info.IsDir() {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best, bestMod = m, mod
		}
	}
	if best == "" {
		return "", &domain.OpError{
			Op:   "metafile.find_generated",
			Kind: domain.KindNotFound,
			Path: filepath.Join(root, YAMLName),
			Err:  domain.ErrNotFound,
		}
	}
	return best, nil
}

func (r *Reader) Read(path string) (domain.MetaDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.MetaDocument{}, &domain.OpError{
			Op:   "metafile.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readJSON(path, b)
	}
	return readYAML(path, b)
}

func readYAML(path string, b []byte) (domain.MetaDocument, error) {
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return domain.MetaDocument{}, &domain.OpError{
			Op:   "metafile.read",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	if m == nil {
		return domain.MetaDocument{}, &domain.OpError{
			Op:   "metafile.read",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("expected a mapping"),
		}
	}

	return domain.MetaDocument{
		Path:     path,
		Name:     scalar(m["name"]),
		Abstract: scalar(m["abstract"]),
	}, nil
}

func readJSON(path string, b []byte) (domain.MetaDocument, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return domain.MetaDocument{}, &domain.OpError{
			Op:   "metafile.read",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	out := domain.MetaDocument{Path: path}
	if v, err := jsonpath.Get("$.name", doc); err == nil {
		out.Name = scalar(v)
	}
	if v, err := jsonpath.Get("$.abstract", doc); err == nil {
		out.Abstract = scalar(v)
	}
	return out, nil
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool, int, int64, float64:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
