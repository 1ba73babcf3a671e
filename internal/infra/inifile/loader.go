package inifile

import (
	"gopkg.in/ini.v1"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// Section holds every ghrepo setting.
const Section = "github"

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load reads the [github] section. A file without that section yields no values.
func (l *Loader) Load(path string) (domain.ConfigFile, error) {
	// Values may be double-quoted to keep surrounding spaces or ';' and '#'.
	f, err := ini.LoadSources(ini.LoadOptions{
		UnescapeValueDoubleQuotes: true,
	}, path)
	if err != nil {
		return domain.ConfigFile{}, &domain.OpError{
			Op:   "inifile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	out := domain.ConfigFile{Path: path, Values: map[string]string{}}

	sec, err := f.GetSection(Section)
	if err != nil {
		return out, nil
	}
	for _, k := range sec.Keys() {
		out.Values[k.Name()] = k.String()
	}
	return out, nil
}
