package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/paictl/internal/hook"
	"github.com/dshills/paictl/internal/identity"
	"github.com/dshills/paictl/internal/manifest"
	"github.com/dshills/paictl/internal/redact"
	"github.com/dshills/paictl/internal/settings"
	"github.com/dshills/paictl/internal/workspace"
)

// hookFlags holds the parsed flags for hook subcommands.
type hookFlags struct {
	quiet bool
}

func newHookCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Emit agent lifecycle hook payloads",
	}

	var flags hookFlags
	sessionCmd := &cobra.Command{
		Use:          "session-start",
		Short:        "Print the session-start context injection block",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionStart(cmd.OutOrStdout(), gf, flags)
		},
	}
	sessionCmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Print only the assembled content, without wrapper tags")

	cmd.AddCommand(sessionCmd)
	return cmd
}

// runSessionStart assembles and prints the session-start payload. It never
// returns an error: a broken workspace must not stop a session from
// starting, so every failure degrades to emitting whatever could be
// assembled.
func runSessionStart(w io.Writer, gf *globalFlags, flags hookFlags) error {
	root, err := workspace.Resolve(gf.root)
	if err != nil {
		logger.Debug("workspace resolution failed", zap.Error(err))
		root = "."
	}

	s, err := settings.Load(root)
	if err != nil {
		logger.Debug("settings unreadable, emitting empty payload", zap.Error(err))
		s = nil
	}

	transform := hookTransform(root, s)
	p := hook.Build(root, s.SessionIncludes(), transform, logger)

	if flags.quiet {
		fmt.Fprint(w, p.Body)
		return nil
	}
	fmt.Fprint(w, p.Format())
	return nil
}

// hookTransform expands identity placeholders in the assembled payload and,
// when the workspace asks for it, scrubs secret material before injection.
// Manifest categories sharpen the scrub when the manifest loads; otherwise
// the built-in patterns still apply.
func hookTransform(root string, s *settings.Settings) func(string) string {
	lookup := lookupChain(s)

	var scrub func(string) string
	if s.RedactHookOutput() {
		m, err := manifest.Load(filepath.Join(root, workspace.ManifestPath))
		if err != nil {
			logger.Debug("manifest unavailable for hook redaction", zap.Error(err))
			m = nil
		}
		scrub = redact.WithManifest(m)
	}

	return func(body string) string {
		body = identity.Expand(body, lookup)
		if scrub != nil {
			body = scrub(body)
		}
		return body
	}
}
