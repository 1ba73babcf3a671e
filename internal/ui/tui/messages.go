package tui

import "github.com/aalvaropc/ghrepo/internal/domain"

type transitionMsg struct {
	tr domain.Transition
}

type projectMsg struct {
	meta domain.ProjectMetadata
}

type runDoneMsg struct {
	ref domain.RemoteReference
	err error
}
