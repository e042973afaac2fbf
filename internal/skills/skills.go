// Package skills discovers SKILL.md documents in a workspace and routes
// natural-language queries to the best match.
//
// Skills are packaged as directories containing a SKILL.md file with YAML
// frontmatter:
//
//	---
//	name: deploy-preview
//	description: Build and publish a preview environment.
//	triggers:
//	  - deploy
//	  - preview
//	---
//
//	# Deploy Preview
//	...
package skills

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Skill is one discovered skill document.
type Skill struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Triggers    []string `json:"triggers,omitempty"`
	// Path is the SKILL.md location relative to the workspace root.
	Path string `json:"path"`
}

// metadata is the YAML frontmatter of a SKILL.md file.
type metadata struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Triggers    []string `yaml:"triggers"`
}

// Discover scans each dir under root for <dir>/<skill>/SKILL.md documents.
// Dirs are scanned in the order given and the first skill with a given name
// wins, so earlier dirs shadow later ones. Missing dirs and unparseable
// documents are skipped.
func Discover(root string, dirs []string) []Skill {
	var out []Skill
	seen := map[string]bool{}
	for _, dir := range dirs {
		entries, err := os.ReadDir(filepath.Join(root, dir))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			rel := filepath.Join(dir, e.Name(), "SKILL.md")
			data, err := os.ReadFile(filepath.Join(root, rel))
			if err != nil {
				continue
			}
			sk, err := parse(string(data))
			if err != nil {
				continue
			}
			if sk.Name == "" {
				sk.Name = e.Name()
			}
			if seen[sk.Name] {
				continue
			}
			seen[sk.Name] = true
			sk.Path = rel
			out = append(out, sk)
		}
	}
	return out
}

// parse extracts a Skill from SKILL.md content.
func parse(input string) (Skill, error) {
	fm, _, err := splitFrontmatter(input)
	if err != nil {
		return Skill{}, err
	}
	var meta metadata
	if fm != "" {
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return Skill{}, fmt.Errorf("parsing frontmatter: %w", err)
		}
	}
	return Skill{
		Name:        meta.Name,
		Description: meta.Description,
		Triggers:    meta.Triggers,
	}, nil
}

// splitFrontmatter separates YAML frontmatter, delimited by --- lines,
// from the markdown body.
func splitFrontmatter(input string) (string, string, error) {
	if !strings.HasPrefix(input, "---\n") {
		return "", input, nil
	}
	lines := strings.SplitAfter(input[4:], "\n")
	var fm strings.Builder
	for i, line := range lines {
		if strings.TrimRight(line, "\r\n") == "---" {
			return fm.String(), strings.Join(lines[i+1:], ""), nil
		}
		fm.WriteString(line)
	}
	return "", "", errors.New("unclosed frontmatter")
}
