// Package settings loads workspace configuration from .pai/settings.yaml.
//
// Settings are optional: a workspace with no settings file gets defaults,
// and every accessor is safe to call on a nil *Settings receiver.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/paictl/internal/workspace"
)

// Settings holds paictl configuration from .pai/settings.yaml.
type Settings struct {
	// Vars feed template substitution and supplement process env vars.
	Vars map[string]string `yaml:"vars"`

	// Render lists template/output pairs for `paictl render`.
	Render []RenderTarget `yaml:"render"`

	Hooks  Hooks  `yaml:"hooks"`
	Skills Skills `yaml:"skills"`
}

// RenderTarget maps one template to its rendered output path. Template is
// relative to .pai/templates/; Output is relative to the workspace root.
type RenderTarget struct {
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
}

// Hooks configures agent lifecycle hook output.
type Hooks struct {
	SessionStart SessionStart `yaml:"session_start"`
}

// SessionStart configures the session-start hook payload.
type SessionStart struct {
	// Include lists files (relative to root) whose content is injected.
	Include []string `yaml:"include"`
	// Redact scrubs known secret shapes from the payload before emission.
	Redact bool `yaml:"redact"`
}

// Skills configures where skill documents are discovered.
type Skills struct {
	Dirs []string `yaml:"dirs"`
}

// Load reads .pai/settings.yaml relative to root.
// Returns nil (not an error) if the file does not exist.
func Load(root string) (*Settings, error) {
	path := filepath.Join(root, workspace.SettingsPath)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// Var returns the named settings variable. Safe on a nil receiver.
func (s *Settings) Var(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.Vars[name]
	return v, ok
}

// RenderTargets returns the configured render pairs. Safe on a nil receiver.
func (s *Settings) RenderTargets() []RenderTarget {
	if s == nil {
		return nil
	}
	return s.Render
}

// SessionIncludes returns the files injected by the session-start hook.
// Safe on a nil receiver.
func (s *Settings) SessionIncludes() []string {
	if s == nil {
		return nil
	}
	return s.Hooks.SessionStart.Include
}

// RedactHookOutput reports whether hook payloads are scrubbed.
// Safe on a nil receiver.
func (s *Settings) RedactHookOutput() bool {
	if s == nil {
		return false
	}
	return s.Hooks.SessionStart.Redact
}

// SkillDirs returns the skill discovery roots, falling back to the
// well-known locations when none are configured. Safe on a nil receiver.
func (s *Settings) SkillDirs() []string {
	if s != nil && len(s.Skills.Dirs) > 0 {
		return s.Skills.Dirs
	}
	return []string{filepath.Join(".claude", "skills"), "skills"}
}
