package domain

import "strings"

// Command is an external program invocation.
type Command struct {
	Dir  string
	Name string
	Args []string
	// Env entries are appended to the inherited environment.
	Env []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// ProcessResult is the outcome of a finished external command.
type ProcessResult struct {
	ExitCode int
	Output   []byte
}

// OK reports a zero exit status.
func (r ProcessResult) OK() bool {
	return r.ExitCode == 0
}
