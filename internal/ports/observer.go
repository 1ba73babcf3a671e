package ports

import "github.com/aalvaropc/ghrepo/internal/domain"

// StageObserver is told about every state transition of a run.
type StageObserver interface {
	OnTransition(tr domain.Transition)
}

// ProjectObserver may be implemented by a StageObserver to learn the resolved
// project metadata before the first network step.
type ProjectObserver interface {
	OnProject(meta domain.ProjectMetadata)
}
