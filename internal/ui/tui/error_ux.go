package tui

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

// userMessage turns a run error into one short line for the operator.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var f *domain.Failure
	if errors.As(err, &f) {
		switch f.Stage {
		case domain.StageConfigNotFound:
			return withHint("Configuration not found", "run `ghrepo init` to create .ghrepo.ini")
		case domain.StageRemoteConflict:
			if strings.Contains(f.Reason, "already exists") {
				return withHint("A remote named \""+domain.GuardedRemote+"\" already exists", "remove it or run elsewhere")
			}
			return "Cannot inspect the git repository"
		case domain.StageMetadataMissing:
			return withHint("Project metadata missing", "pass --name/--desc or add META.yml")
		case domain.StageLoginPageUnrecognized:
			return "Login page not recognized"
		case domain.StageLoginFailed:
			return withHint("Login failed", "check account and password")
		case domain.StageCreationFormUnrecognized:
			return "New repository page not recognized"
		case domain.StageDebugAbort:
			return "Stopped before creating the repository (debug)"
		case domain.StageRemoteURLMissing:
			return withHint("No clone URL on the result page", "the name may already be taken")
		case domain.StageRemoteWiringFailed:
			return "Repository created, but adding the remote or pushing failed"
		}
		return string(f.Stage)
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindNotFound:
			return "Not found"
		case domain.KindInvalidConfig:
			if strings.TrimSpace(oe.Path) != "" {
				return "Invalid config in " + filepath.Base(oe.Path)
			}
			return "Invalid config"
		case domain.KindMissingVar:
			return "Missing template variable"
		}
	}

	if errors.Is(err, errCancelled) {
		return "Cancelled"
	}
	return "Unexpected error (see logs)"
}

func withHint(msg, hint string) string {
	return msg + " (" + hint + ")"
}
