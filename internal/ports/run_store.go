package ports

import "github.com/aalvaropc/ghrepo/internal/domain"

// RunStore persists run records and returns an identifier for the saved record.
type RunStore interface {
	SaveRun(run domain.RunRecord) (string, error)
}
