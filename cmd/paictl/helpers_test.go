package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/dshills/paictl/internal/gitfiles"
	"github.com/dshills/paictl/internal/workspace"
)

// testManifest mirrors a realistic protected-content manifest: one regex
// category with an exception glob and one literal rule scoped to SKILL.md.
const testManifest = `{
  "version": "1.0",
  "patterns": {
    "api-keys": {
      "description": "API keys",
      "patterns": ["AKIA[0-9A-Z]{16}"],
      "exceptions": ["**/*.example"]
    }
  },
  "validation_rules": {
    "skills-clean": {
      "description": "skills must stay depersonalized",
      "files": ["**/SKILL.md"],
      "must_not_contain": ["Jane Doe"]
    }
  }
}`

// writeFile creates rel under root, including parent directories.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newWorkspace builds a temp workspace with the given manifest content and
// returns its root. Empty content skips the manifest.
func newWorkspace(t *testing.T, manifestContent string) string {
	t.Helper()
	root := t.TempDir()
	if manifestContent != "" {
		writeFile(t, root, workspace.ManifestPath, manifestContent)
	}
	return root
}

// fakeGitLists installs a git runner serving canned staged and tracked
// listings. A non-nil trackedErr makes the tracked listing fail the way a
// non-repository does.
func fakeGitLists(t *testing.T, staged, tracked string, trackedErr error) {
	t.Helper()
	prev := gitfiles.GitRunner()
	gitfiles.SetGitRunner(func(_ context.Context, _ string, args ...string) ([]byte, error) {
		if args[0] == "diff" {
			return []byte(staged), nil
		}
		if trackedErr != nil {
			return nil, trackedErr
		}
		return []byte(tracked), nil
	})
	t.Cleanup(func() { gitfiles.SetGitRunner(prev) })
}

// runGitIn runs git in dir and fails the test on a non-zero exit.
func runGitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// wantExitCode asserts err is an exitErr carrying code.
func wantExitCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", code)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected exitErr, got %T: %v", err, err)
	}
	if ee.code != code {
		t.Errorf("exit code = %d, want %d (%s)", ee.code, code, ee.msg)
	}
}
