package ports

import "github.com/aalvaropc/ghrepo/internal/domain"

// ConfigLocator finds the config file to read, first match wins.
type ConfigLocator interface {
	Locate() (string, error)
}

// ConfigLoader reads the [github] settings of a config file.
type ConfigLoader interface {
	Load(path string) (domain.ConfigFile, error)
}

// ConfigInitializer writes a starter config file.
type ConfigInitializer interface {
	Init(dir string, force bool) (path string, err error)
}
