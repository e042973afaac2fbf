package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/paictl/internal/identity"
	"github.com/dshills/paictl/internal/settings"
)

// renderFlags holds the parsed flags for the render command.
type renderFlags struct {
	check bool
}

func newRenderCmd(gf *globalFlags) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:          "render",
		Short:        "Render identity templates to their configured outputs",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), gf, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.check, "check", false, "Report drift between templates and outputs without writing")
	return cmd
}

func runRender(ctx context.Context, w io.Writer, gf *globalFlags, flags renderFlags) error {
	// --- Step 1: Resolve workspace and render targets ---
	root, s, err := loadWorkspaceSettings(gf)
	if err != nil {
		return codeError(exitConfig, "%s", err)
	}
	targets := s.RenderTargets()
	if len(targets) == 0 {
		fmt.Fprintln(w, "No render targets configured in .pai/settings.yaml.")
		return nil
	}
	lookup := lookupChain(s)

	// --- Step 2: Check drift or write outputs ---
	if flags.check {
		return runRenderCheck(w, root, targets, lookup)
	}

	logVerbose(gf.verbose, "Rendering %d target(s)", len(targets))
	results, renderErr := identity.RenderAll(ctx, root, targets, lookup)
	for _, res := range results {
		if res.Written {
			fmt.Fprintf(w, "rendered  %s → %s\n", res.Template, res.Output)
		} else {
			fmt.Fprintf(w, "unchanged %s\n", res.Output)
		}
	}
	if renderErr != nil {
		return codeError(exitViolations, "rendering templates: %s", renderErr)
	}
	return nil
}

// runRenderCheck renders every target in memory and reports drift without
// touching the outputs. Any drift exits non-zero so CI can gate on it.
func runRenderCheck(w io.Writer, root string, targets []settings.RenderTarget, lookup identity.Lookup) error {
	results, err := identity.CheckDrift(root, targets, lookup)
	if err != nil {
		return codeError(exitViolations, "checking drift: %s", err)
	}

	drifted := 0
	for _, r := range results {
		switch {
		case r.InSync:
			fmt.Fprintf(w, "in sync   %s\n", r.Output)
		case r.Missing:
			drifted++
			fmt.Fprintf(w, "missing   %s\n", r.Output)
		default:
			drifted++
			fmt.Fprintf(w, "drifted   %s\n", r.Output)
			fmt.Fprint(w, r.Diff)
		}
	}

	if drifted > 0 {
		return codeError(exitViolations, "%d render output(s) out of sync; run `paictl render` to update", drifted)
	}
	fmt.Fprintf(w, "%d output(s) in sync\n", len(results))
	return nil
}

// lookupChain resolves template variables from the process environment
// first, falling through to settings vars, so an operator export beats the
// committed default.
func lookupChain(s *settings.Settings) identity.Lookup {
	return identity.ChainLookup(os.LookupEnv, s.Var)
}
