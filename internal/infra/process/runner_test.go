package process

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRun_CapturesOutputAndDir(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()

	r := New(WithEnv("GHREPO_TEST=hello"))
	res, err := r.Run(context.Background(), domain.Command{
		Dir:  dir,
		Name: "sh",
		Args: []string{"-c", `echo "$GHREPO_TEST"; pwd; echo oops >&2`},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
	out := string(res.Output)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "oops") {
		t.Fatalf("expected combined output, got %q", out)
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	requireSh(t)

	res, err := New().Run(context.Background(), domain.Command{Name: "sh", Args: []string{"-c", "exit 3"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 || res.OK() {
		t.Fatalf("expected exit 3, got %d", res.ExitCode)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	_, err := New().Run(context.Background(), domain.Command{Name: "ghrepo-definitely-not-installed"})
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected KindExecution, got %v", err)
	}
}
