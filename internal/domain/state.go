package domain

import "time"

// State is a position in the repository creation sequence.
type State string

const (
	StateStart              State = "Start"
	StateLoginPageLoaded    State = "LoginPageLoaded"
	StateLoggedIn           State = "LoggedIn"
	StateCreationFormLoaded State = "CreationFormLoaded"
	StateDebugHalt          State = "DebugHalt"
	StateRepoCreated        State = "RepoCreated"
	StateRemoteExtracted    State = "RemoteExtracted"
	StatePushed             State = "Pushed"
)

// Transition records a move between two states.
type Transition struct {
	From State     `json:"from"`
	To   State     `json:"to"`
	At   time.Time `json:"at"`
}
