package skills

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSkill(t *testing.T, root, dir, name, content string) {
	t.Helper()
	d := filepath.Join(root, dir, name)
	if err := os.MkdirAll(d, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const deploySkill = `---
name: deploy-preview
description: Build and publish a preview environment.
triggers:
  - deploy
  - preview
---

# Deploy Preview
`

func TestDiscover_ReadsFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skills", "deploy-preview", deploySkill)

	got := Discover(root, []string{"skills"})
	if len(got) != 1 {
		t.Fatalf("got %d skills, want 1", len(got))
	}
	sk := got[0]
	if sk.Name != "deploy-preview" {
		t.Errorf("Name = %q", sk.Name)
	}
	if sk.Description != "Build and publish a preview environment." {
		t.Errorf("Description = %q", sk.Description)
	}
	if len(sk.Triggers) != 2 || sk.Triggers[0] != "deploy" {
		t.Errorf("Triggers = %v", sk.Triggers)
	}
	if sk.Path != filepath.Join("skills", "deploy-preview", "SKILL.md") {
		t.Errorf("Path = %q", sk.Path)
	}
}

func TestDiscover_NameFallsBackToDirName(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skills", "unnamed", "---\ndescription: no name field\n---\nbody\n")

	got := Discover(root, []string{"skills"})
	if len(got) != 1 || got[0].Name != "unnamed" {
		t.Errorf("got %+v", got)
	}
}

func TestDiscover_FirstDirWins(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, filepath.Join(".claude", "skills"), "deploy", "---\nname: deploy\ndescription: project copy\n---\n")
	writeSkill(t, root, "skills", "deploy", "---\nname: deploy\ndescription: shared copy\n---\n")

	got := Discover(root, []string{filepath.Join(".claude", "skills"), "skills"})
	if len(got) != 1 {
		t.Fatalf("got %d skills, want 1 after shadowing", len(got))
	}
	if got[0].Description != "project copy" {
		t.Errorf("wrong copy won: %+v", got[0])
	}
}

func TestDiscover_MissingDirSkipped(t *testing.T) {
	if got := Discover(t.TempDir(), []string{"skills", "also-missing"}); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestDiscover_SkipsMalformedAndBareFiles(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skills", "good", deploySkill)
	writeSkill(t, root, "skills", "broken", "---\nname: [unclosed\n---\n")
	// A stray file directly in the skills dir is not a skill.
	if err := os.WriteFile(filepath.Join(root, "skills", "README.md"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A skill dir without SKILL.md is ignored.
	if err := os.MkdirAll(filepath.Join(root, "skills", "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := Discover(root, []string{"skills"})
	if len(got) != 1 || got[0].Name != "deploy-preview" {
		t.Errorf("got %+v, want only deploy-preview", got)
	}
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFM   string
		wantBody string
		wantErr  bool
	}{
		{"normal", "---\nname: x\n---\nbody\n", "name: x\n", "body\n", false},
		{"no frontmatter", "just body\n", "", "just body\n", false},
		{"empty frontmatter", "---\n---\nbody\n", "", "body\n", false},
		{"closing delimiter at EOF", "---\nname: x\n---", "name: x\n", "", false},
		{"unclosed", "---\nname: x\n", "", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fm, body, err := splitFrontmatter(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if fm != tc.wantFM {
				t.Errorf("fm = %q, want %q", fm, tc.wantFM)
			}
			if body != tc.wantBody {
				t.Errorf("body = %q, want %q", body, tc.wantBody)
			}
		})
	}
}
