package inifile

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// FileName is the config file looked up in the working directory and then in $HOME.
const FileName = ".ghrepo.ini"

// Finder locates the config file. The first existing candidate wins.
type Finder struct {
	ConfigFile string // defaults to FileName
	WorkDir    string
	HomeDir    string
}

// NewFinder searches workDir then homeDir. Empty directories are skipped.
func NewFinder(workDir, homeDir string) *Finder {
	return &Finder{ConfigFile: FileName, WorkDir: workDir, HomeDir: homeDir}
}

var _ ports.ConfigLocator = (*Finder)(nil)

func (f *Finder) Locate() (string, error) {
	name := f.ConfigFile
	if name == "" {
		name = FileName
	}

	var tried []string
	for _, dir := range []string{f.WorkDir, f.HomeDir} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, name)
		tried = append(tried, p)

		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}

	if len(tried) == 0 {
		return "", &domain.OpError{
			Op:   "inifile.locate",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("no directory to search"),
		}
	}

	return "", &domain.OpError{
		Op:   "inifile.locate",
		Kind: domain.KindNotFound,
		Path: tried[len(tried)-1],
		Err:  domain.ErrNotFound,
	}
}
