// Package workspace resolves the directory a paictl invocation operates on
// and names the well-known paths inside it.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Well-known paths, relative to the workspace root.
const (
	ConfigDir    = ".pai"
	ManifestPath = ".pai/protected-patterns.json"
	SettingsPath = ".pai/settings.yaml"
	TemplatesDir = ".pai/templates"
	ContextDir   = ".pai/context"
)

// EnvRoot pins the workspace root regardless of the working directory.
const EnvRoot = "PAI_ROOT"

// Resolve returns the workspace root. Precedence: an explicit flag value,
// then $PAI_ROOT, then the nearest ancestor of the working directory holding
// a .pai/ directory, then the working directory itself.
//
// The returned root may not contain a manifest or settings file; callers
// surface that when they try to load one.
func Resolve(flagRoot string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return resolveFrom(flagRoot, os.Getenv(EnvRoot), cwd), nil
}

func resolveFrom(flagRoot, envRoot, cwd string) string {
	if flagRoot != "" {
		return flagRoot
	}
	if envRoot != "" {
		return envRoot
	}
	if root, ok := findUp(cwd); ok {
		return root
	}
	return cwd
}

// findUp walks up from start looking for a .pai/ directory.
func findUp(start string) (string, bool) {
	dir := start
	for {
		info, err := os.Stat(filepath.Join(dir, ConfigDir))
		if err == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
