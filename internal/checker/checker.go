// Package checker applies a protected-content manifest to candidate files
// and produces per-file verdicts.
package checker

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/paictl/internal/glob"
	"github.com/dshills/paictl/internal/manifest"
	"github.com/dshills/paictl/internal/report"
)

// Run checks every candidate file against the manifest, in order, and
// aggregates the results. Candidate paths are relative to root.
func Run(m *manifest.Manifest, root string, files []string) *report.Report {
	rep := &report.Report{
		Root:         root,
		ManifestHash: m.Hash,
		Files:        make([]report.FileResult, 0, len(files)),
	}
	for _, f := range files {
		res := CheckFile(m, root, f)
		rep.Summary.FilesChecked++
		if res.Valid {
			rep.Summary.FilesValid++
		}
		rep.Summary.ViolationCount += len(res.Violations)
		rep.Files = append(rep.Files, res)
	}
	return rep
}

// CheckFile evaluates a single file against every pattern category and
// validation rule. A file that cannot be read, or that holds binary
// content, has nothing checkable and is reported valid.
//
// Violations accumulate per matching pattern and per missing or forbidden
// literal; they are never deduplicated. Categories and rules apply in
// sorted name order so repeated runs produce identical reports.
func CheckFile(m *manifest.Manifest, root, path string) report.FileResult {
	res := report.FileResult{Path: path, Valid: true}

	data, err := os.ReadFile(filepath.Join(root, path))
	if err != nil {
		// Deleted after staging, or unreadable. Nothing to protect.
		return res
	}
	if isBinary(data) {
		return res
	}
	content := string(data)

	for _, name := range m.CategoryNames() {
		cat := m.Patterns[name]
		if glob.Match(path, cat.Exceptions) {
			continue
		}
		for _, pat := range cat.Patterns {
			re, err := regexp.Compile("(?i)" + pat)
			if err != nil {
				// A broken pattern must not block commits; skip it.
				continue
			}
			if loc := re.FindStringIndex(content); loc != nil {
				res.Violations = append(res.Violations, report.Violation{
					Kind:    report.KindPattern,
					Source:  name,
					Message: fmt.Sprintf("contains %q (pattern %q)", snippet(content[loc[0]:loc[1]]), pat),
				})
			}
		}
	}

	for _, name := range m.RuleNames() {
		rule := m.ValidationRules[name]
		if !glob.Match(path, rule.Files) {
			continue
		}
		for _, want := range rule.MustContain {
			if !strings.Contains(content, want) {
				res.Violations = append(res.Violations, report.Violation{
					Kind:    report.KindRule,
					Source:  name,
					Message: fmt.Sprintf("missing required content %q", want),
				})
			}
		}
		for _, bad := range rule.MustNotContain {
			if strings.Contains(content, bad) {
				res.Violations = append(res.Violations, report.Violation{
					Kind:    report.KindRule,
					Source:  name,
					Message: fmt.Sprintf("contains forbidden content %q", bad),
				})
			}
		}
	}

	res.Valid = len(res.Violations) == 0
	return res
}

// isBinary reports whether data looks like non-text content. A NUL byte or
// invalid UTF-8 is treated as binary.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) != -1 || !utf8.Valid(data)
}

// snippet keeps matched text printable on one report line: the first line
// only, capped at 80 runes.
func snippet(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const max = 80
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max]) + "..."
	}
	return s
}
