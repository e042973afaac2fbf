// Package gitfiles enumerates the candidate file set for validation by
// querying the repository index.
package gitfiles

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Mode selects which listing produces the candidate set.
type Mode string

const (
	ModeStaged  Mode = "staged"
	ModeTracked Mode = "tracked"
)

// Runner invokes git in the given directory and returns its stdout.
type Runner func(ctx context.Context, root string, args ...string) ([]byte, error)

// runGit is a var to allow test overrides without a real repository.
var runGit Runner = execGit

// GitRunner returns the current git runner.
// Exposed for use by tests that need to restore it.
func GitRunner() Runner { return runGit }

// SetGitRunner overrides how git is invoked.
// Intended for use in tests only.
func SetGitRunner(fn Runner) { runGit = fn }

// List returns paths relative to root for the given mode, in the order
// git reports them. When root is a subdirectory of the repository, both
// modes restrict the listing to files under root; ls-files does this on
// its own, the staged diff needs --relative or it would print paths from
// the repository top level that do not resolve against root.
//
// A failed staged listing yields an empty set: a pre-commit hook invoked
// outside a repository has nothing staged to protect. A failed tracked
// listing is an error, because the caller explicitly asked for the whole
// repository.
func List(ctx context.Context, root string, mode Mode) ([]string, error) {
	switch mode {
	case ModeStaged:
		out, err := runGit(ctx, root, "diff", "--cached", "--name-only", "--diff-filter=ACM", "--relative")
		if err != nil {
			return nil, nil
		}
		return splitPaths(out), nil
	case ModeTracked:
		out, err := runGit(ctx, root, "ls-files")
		if err != nil {
			return nil, fmt.Errorf("listing tracked files: %w", err)
		}
		return splitPaths(out), nil
	default:
		return nil, fmt.Errorf("unknown listing mode %q", mode)
	}
}

func execGit(ctx context.Context, root string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

func splitPaths(out []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}
