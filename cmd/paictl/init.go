package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/paictl/internal/manifest"
	"github.com/dshills/paictl/internal/workspace"
)

// initFlags holds the parsed flags for the init command.
type initFlags struct {
	preset string
	force  bool
}

func newInitCmd(gf *globalFlags) *cobra.Command {
	var flags initFlags
	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Scaffold a .pai/ workspace",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), gf, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.preset, "preset", "standard", "Starter preset: minimal or standard")
	f.BoolVar(&flags.force, "force", false, "Overwrite existing files")
	return cmd
}

const starterSettings = `# paictl workspace settings.
vars:
  ASSISTANT_NAME: ""
  OPERATOR_NAME: ""
render:
  - template: identity.md
    output: CLAUDE.md
hooks:
  session_start:
    include:
      - .pai/context/identity.md
    redact: true
skills:
  dirs:
    - .claude/skills
    - skills
`

const starterTemplate = `# ${ASSISTANT_NAME||Assistant}

${ASSISTANT_NAME||Your assistant} works with ${OPERATOR_NAME||you}. Set the
variables in .pai/settings.yaml or export them to personalize this document,
then run ` + "`paictl render`" + `.
`

const starterContext = `# Session context

Describe here what the assistant should know at the start of every session:
who it is working with, active projects, and standing preferences. This file
is injected by ` + "`paictl hook session-start`" + `.
`

func runInit(w io.Writer, gf *globalFlags, flags initFlags) error {
	// --- Step 1: Resolve the target root ---
	// init deliberately skips the .pai/ ancestor walk: scaffolding always
	// lands in the directory the user is in, never a parent workspace.
	root := gf.root
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return codeError(exitConfig, "getting working directory: %s", err)
		}
	}

	// --- Step 2: Build the preset content ---
	m, err := manifest.Preset(flags.preset)
	if err != nil {
		return codeError(exitConfig, "%s", err)
	}
	manifestJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return codeError(exitViolations, "encoding manifest: %s", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{workspace.ManifestPath, string(manifestJSON) + "\n"},
		{workspace.SettingsPath, starterSettings},
		{filepath.Join(workspace.TemplatesDir, "identity.md"), starterTemplate},
		{filepath.Join(workspace.ContextDir, "identity.md"), starterContext},
	}

	// --- Step 3: Write files, keeping existing ones unless forced ---
	for _, f := range files {
		abs := filepath.Join(root, f.path)
		if _, statErr := os.Stat(abs); statErr == nil && !flags.force {
			fmt.Fprintf(w, "kept    %s (use --force to overwrite)\n", f.path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return codeError(exitViolations, "creating %s: %s", filepath.Dir(f.path), err)
		}
		if err := os.WriteFile(abs, []byte(f.content), 0o644); err != nil {
			return codeError(exitViolations, "writing %s: %s", f.path, err)
		}
		fmt.Fprintf(w, "created %s\n", f.path)
	}

	fmt.Fprintf(w, "\nWorkspace ready (%s preset). Try `paictl validate`.\n", flags.preset)
	return nil
}
