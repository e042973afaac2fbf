package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/paictl/internal/checker"
	"github.com/dshills/paictl/internal/gitfiles"
	"github.com/dshills/paictl/internal/manifest"
	"github.com/dshills/paictl/internal/report"
	"github.com/dshills/paictl/internal/watch"
	"github.com/dshills/paictl/internal/workspace"
)

// validateFlags holds the parsed flags for the validate command.
type validateFlags struct {
	staged       bool
	jsonOut      bool
	watchChanges bool
	manifestPath string
}

func newValidateCmd(gf *globalFlags) *cobra.Command {
	var flags validateFlags
	cmd := &cobra.Command{
		Use:          "validate",
		Short:        "Check tracked files against the protected-content manifest",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), gf, flags)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&flags.staged, "staged", false, "Check only files staged for the next commit")
	f.BoolVar(&flags.jsonOut, "json", false, "Emit a machine-readable JSON report")
	f.BoolVar(&flags.watchChanges, "watch", false, "Keep running and re-validate when workspace files change")
	f.StringVar(&flags.manifestPath, "manifest", "", "Manifest path (default: <root>/"+workspace.ManifestPath+")")
	return cmd
}

func runValidate(ctx context.Context, w io.Writer, gf *globalFlags, flags validateFlags) error {
	// --- Step 1: Resolve workspace root ---
	root, err := workspace.Resolve(gf.root)
	if err != nil {
		return codeError(exitConfig, "%s", err)
	}
	logVerbose(gf.verbose, "Workspace root: %s", root)

	// --- Step 2: Load manifest ---
	manifestPath := flags.manifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(root, workspace.ManifestPath)
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return codeError(exitConfig, "%s", err)
	}
	logVerbose(gf.verbose, "Manifest: %s (%d categories, %d rules)",
		manifestPath, len(m.Patterns), len(m.ValidationRules))

	// --- Step 3: Resolve candidate file set ---
	mode := gitfiles.ModeTracked
	if flags.staged {
		mode = gitfiles.ModeStaged
	}
	files, err := gitfiles.List(ctx, root, mode)
	if err != nil {
		return codeError(exitConfig, "%s", err)
	}
	logVerbose(gf.verbose, "Candidate files: %d (%s)", len(files), mode)

	// --- Step 4: Staged-empty shortcut ---
	if flags.staged && len(files) == 0 && !flags.watchChanges {
		fmt.Fprintln(w, "No staged files to validate.")
		return nil
	}

	// --- Step 5: Check files and print the report ---
	rep := checker.Run(m, root, files)
	stampReport(rep, mode)
	if err := writeReport(w, rep, flags.jsonOut); err != nil {
		return codeError(exitViolations, "%s", err)
	}

	// --- Step 6: Watch mode keeps running; violations only gate one-shot runs ---
	if flags.watchChanges {
		return watchValidate(ctx, w, root, manifestPath, m, mode, files, flags.jsonOut)
	}
	if rep.HasViolations() {
		return codeError(exitViolations, "%d violation(s) found", rep.Summary.ViolationCount)
	}
	return nil
}

// watchValidate re-runs validation whenever watched files settle, until the
// context is cancelled. Re-runs re-resolve the candidate set and reload the
// manifest, so edits to either are picked up; a manifest that becomes
// unreadable mid-session keeps the last good version instead of killing the
// watch.
func watchValidate(ctx context.Context, w io.Writer, root, manifestPath string, m *manifest.Manifest, mode gitfiles.Mode, files []string, jsonOut bool) error {
	current := m

	rerun := func(ctx context.Context) {
		if m2, err := manifest.Load(manifestPath); err == nil {
			current = m2
		} else {
			fmt.Fprintf(os.Stderr, "WARN: manifest reload failed: %s\n", err)
		}

		fl, err := gitfiles.List(ctx, root, mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARN: %s\n", err)
			return
		}

		rep := checker.Run(current, root, fl)
		stampReport(rep, mode)
		if err := writeReport(w, rep, jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: %s\n", err)
		}
	}

	dirs := append(watch.DirsFor(files), workspace.ConfigDir)
	watcher, err := watch.New(root, dirs, rerun, logger)
	if err != nil {
		return codeError(exitViolations, "starting watcher: %s", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return codeError(exitViolations, "starting watcher: %s", err)
	}

	fmt.Fprintln(os.Stderr, "Watching for changes. Press Ctrl-C to stop.")
	<-ctx.Done()
	watcher.Stop()
	return nil
}

// stampReport fills the run metadata the checker does not know about.
func stampReport(rep *report.Report, mode gitfiles.Mode) {
	rep.Tool = "paictl"
	rep.Version = version
	rep.Mode = string(mode)
}

// writeReport renders rep in the requested format and writes it to w with a
// trailing newline.
func writeReport(w io.Writer, rep *report.Report, jsonOut bool) error {
	format := "human"
	if jsonOut {
		format = "json"
	}
	renderer, err := report.NewRenderer(format)
	if err != nil {
		return err
	}
	out, err := renderer.Render(rep)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	// Ensure output ends with a newline for terminal friendliness.
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}
