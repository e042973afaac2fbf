package identity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/paictl/internal/lock"
	"github.com/dshills/paictl/internal/settings"
	"github.com/dshills/paictl/internal/workspace"
)

// LockFile is the advisory lock path, relative to the workspace root, that
// serializes render output writes.
const LockFile = ".pai/render.lock"

// Result records the outcome for one render target.
type Result struct {
	Template string
	Output   string
	// Written is false when the output file already held the rendered
	// content and was left untouched.
	Written bool
}

// RenderAll expands each target's template and writes the output files,
// holding the workspace render lock for the duration. Output directories
// are created as needed. The first failing target stops the run; earlier
// results are still returned.
func RenderAll(ctx context.Context, root string, targets []settings.RenderTarget, lookup Lookup) ([]Result, error) {
	lk, err := lock.Acquire(ctx, filepath.Join(root, LockFile))
	if err != nil {
		return nil, err
	}
	defer lk.Release()

	var results []Result
	for _, tgt := range targets {
		rendered, err := renderTemplate(root, tgt, lookup)
		if err != nil {
			return results, err
		}

		outPath := filepath.Join(root, tgt.Output)
		if cur, err := os.ReadFile(outPath); err == nil && string(cur) == rendered {
			results = append(results, Result{Template: tgt.Template, Output: tgt.Output})
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return results, fmt.Errorf("creating output directory for %s: %w", tgt.Output, err)
		}
		if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
			return results, fmt.Errorf("writing %s: %w", tgt.Output, err)
		}
		results = append(results, Result{Template: tgt.Template, Output: tgt.Output, Written: true})
	}
	return results, nil
}

// renderTemplate reads a template from .pai/templates/ and expands it.
func renderTemplate(root string, tgt settings.RenderTarget, lookup Lookup) (string, error) {
	src, err := os.ReadFile(filepath.Join(root, workspace.TemplatesDir, tgt.Template))
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", tgt.Template, err)
	}
	return Expand(string(src), lookup), nil
}
