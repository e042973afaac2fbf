// Package identity renders personalization templates into the documents an
// agent session reads, substituting operator-specific values at render time
// so the documents themselves stay generic.
package identity

import (
	"regexp"
	"strings"
)

// Lookup resolves a substitution variable by name.
type Lookup func(name string) (string, bool)

var (
	placeholderRe = regexp.MustCompile(`\$\{([^{}]*)\}`)
	varNameRe     = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
)

// Expand substitutes every ${SEGMENT||SEGMENT||...} placeholder in src.
//
// Segments are tried left to right. A segment shaped like a variable name
// resolves through lookup; any other segment is a literal. The first
// segment yielding a non-empty value wins. A placeholder where no segment
// yields anything expands to the empty string.
func Expand(src string, lookup Lookup) string {
	return placeholderRe.ReplaceAllStringFunc(src, func(ph string) string {
		body := ph[2 : len(ph)-1]
		for _, seg := range strings.Split(body, "||") {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			if varNameRe.MatchString(seg) {
				if v, ok := lookup(seg); ok && v != "" {
					return v
				}
				continue
			}
			return seg
		}
		return ""
	})
}

// ChainLookup tries each lookup in order and returns the first non-empty
// hit, so an empty environment variable falls through to settings vars.
func ChainLookup(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(name); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}
