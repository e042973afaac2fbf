package identity

import (
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/paictl/internal/settings"
)

// DriftResult describes how one render output differs from what its
// template would produce today.
type DriftResult struct {
	Output  string
	InSync  bool
	Missing bool
	// Diff is patch text describing disk → rendered, empty when InSync
	// or Missing.
	Diff string
}

// CheckDrift expands every target in memory and compares against the
// output files on disk, without writing anything. A missing output file
// counts as drift.
func CheckDrift(root string, targets []settings.RenderTarget, lookup Lookup) ([]DriftResult, error) {
	dmp := diffmatchpatch.New()

	var results []DriftResult
	for _, tgt := range targets {
		want, err := renderTemplate(root, tgt, lookup)
		if err != nil {
			return results, err
		}

		cur, err := os.ReadFile(filepath.Join(root, tgt.Output))
		if err != nil {
			results = append(results, DriftResult{Output: tgt.Output, Missing: true})
			continue
		}
		if string(cur) == want {
			results = append(results, DriftResult{Output: tgt.Output, InSync: true})
			continue
		}

		diffs := dmp.DiffMain(string(cur), want, false)
		patches := dmp.PatchMake(string(cur), diffs)
		results = append(results, DriftResult{
			Output: tgt.Output,
			Diff:   dmp.PatchToText(patches),
		})
	}
	return results, nil
}

// HasDrift reports whether any result is out of sync.
func HasDrift(results []DriftResult) bool {
	for _, r := range results {
		if !r.InSync {
			return true
		}
	}
	return false
}
