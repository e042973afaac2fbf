// Command paictl manages a personalized AI workspace: it validates tracked
// files against a protected-content manifest, renders identity templates,
// emits session-start hook payloads, and routes skill queries.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/paictl/internal/settings"
	"github.com/dshills/paictl/internal/workspace"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes. Violations and drift are ordinary outcomes of a clean run;
// misconfiguration means the run itself could not be trusted.
const (
	exitViolations = 1
	exitConfig     = 2
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	root    string
	verbose bool
	debug   bool
}

// logger is the process-wide structured logger. It stays a no-op unless
// --debug is set.
var logger = zap.NewNop()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gf globalFlags
	root := &cobra.Command{
		Use:           "paictl",
		Short:         "Manage a personalized AI workspace",
		Long:          "paictl keeps a personalized AI workspace shareable: it validates files against a protected-content manifest, renders identity templates, and wires session hooks and skills.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !gf.debug {
				return nil
			}
			config := zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gf.root, "root", "", "Workspace root (default: $PAI_ROOT, else nearest .pai/ ancestor)")
	pf.BoolVar(&gf.verbose, "verbose", false, "Print processing steps to stderr")
	pf.BoolVar(&gf.debug, "debug", false, "Enable structured debug logging to stderr")

	root.AddCommand(
		newValidateCmd(&gf),
		newHookCmd(&gf),
		newRenderCmd(&gf),
		newSkillsCmd(&gf),
		newInitCmd(&gf),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// Flag parse and usage errors are misconfiguration.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitConfig)
	}
}

// logVerbose writes a progress message to stderr when verbose mode is
// enabled.
func logVerbose(verbose bool, format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "INFO: "+format+"\n", args...)
	}
}

// loadWorkspaceSettings resolves the workspace root and loads its optional
// settings file. A missing settings file yields nil settings, not an error.
func loadWorkspaceSettings(gf *globalFlags) (string, *settings.Settings, error) {
	root, err := workspace.Resolve(gf.root)
	if err != nil {
		return "", nil, err
	}
	s, err := settings.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, s, nil
}

// writeJSON marshals v with indentation and writes it followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return codeError(exitViolations, "encoding JSON: %s", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
