package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrMissingVar    = errors.New("missing variable")
	ErrExecution     = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindMissingVar    ErrorKind = "missing_variable"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// Stage names the step of a run that failed. Every stage failure is fatal.
type Stage string

const (
	StageConfigNotFound           Stage = "ConfigNotFound"
	StageRemoteConflict           Stage = "RemoteConflict"
	StageMetadataMissing          Stage = "MetadataMissing"
	StageLoginPageUnrecognized    Stage = "LoginPageUnrecognized"
	StageLoginFailed              Stage = "LoginFailed"
	StageCreationFormUnrecognized Stage = "CreationFormUnrecognized"
	StageDebugAbort               Stage = "DebugAbort"
	StageRemoteURLMissing         Stage = "RemoteUrlMissing"
	StageRemoteWiringFailed       Stage = "RemoteWiringFailed"
)

// Failure is the terminal error of a run. Nothing is rolled back.
type Failure struct {
	Stage  Stage
	Reason string
	Err    error
}

// Fail builds a Failure for stage with an optional cause.
func Fail(stage Stage, reason string, cause error) *Failure {
	return &Failure{Stage: stage, Reason: reason, Err: cause}
}

func (f *Failure) Error() string {
	if f == nil {
		return "<nil>"
	}

	base := string(f.Stage)
	if f.Reason != "" {
		base += ": " + f.Reason
	}
	if f.Err != nil {
		base += fmt.Sprintf(": %v", f.Err)
	}
	return base
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

// StageOf returns the stage carried by err, or "" if err is not a Failure.
func StageOf(err error) Stage {
	var f *Failure
	if errors.As(err, &f) {
		return f.Stage
	}
	return ""
}

// IsStage reports whether err is a Failure at the given stage.
func IsStage(err error, stage Stage) bool {
	return err != nil && StageOf(err) == stage
}
