package usecase

import "github.com/aalvaropc/ghrepo/internal/ports"

type InitConfig struct {
	initializer ports.ConfigInitializer
}

func NewInitConfig(initializer ports.ConfigInitializer) *InitConfig {
	return &InitConfig{initializer: initializer}
}

// Execute writes a starter config file into dir and returns its path.
func (uc *InitConfig) Execute(dir string, force bool) (string, error) {
	return uc.initializer.Init(dir, force)
}
