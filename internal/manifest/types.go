// Package manifest loads the protected-content manifest: the JSON document
// declaring pattern categories and validation rules that `paictl validate`
// enforces against the workspace.
package manifest

import "sort"

// DefaultPath is the manifest location relative to the workspace root.
const DefaultPath = ".pai/protected-patterns.json"

// Manifest is the parsed protected-content manifest. It is loaded once per
// run and read-only thereafter.
type Manifest struct {
	Version         string              `json:"version"`
	Description     string              `json:"description,omitempty"`
	Patterns        map[string]Category `json:"patterns"`
	ValidationRules map[string]Rule     `json:"validation_rules"`

	// Hash is "sha256:<hex>" of the manifest bytes, for report metadata.
	Hash string `json:"-"`
}

// Category is a named group of regular-expression patterns describing one
// class of disallowed content. Files matching an exception glob are skipped
// for this category only.
type Category struct {
	Description string   `json:"description"`
	Patterns    []string `json:"patterns"`
	Exceptions  []string `json:"exceptions,omitempty"`
}

// Rule requires or forbids literal substrings in files matching at least one
// of its Files globs.
type Rule struct {
	Description    string   `json:"description"`
	Files          []string `json:"files"`
	MustContain    []string `json:"must_contain,omitempty"`
	MustNotContain []string `json:"must_not_contain,omitempty"`
}

// CategoryNames returns the pattern category names in sorted order so that
// repeated runs report violations deterministically.
func (m *Manifest) CategoryNames() []string {
	names := make([]string, 0, len(m.Patterns))
	for name := range m.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RuleNames returns the validation rule names in sorted order.
func (m *Manifest) RuleNames() []string {
	names := make([]string, 0, len(m.ValidationRules))
	for name := range m.ValidationRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
