// Package glob matches repository-relative paths against manifest glob
// patterns. The same matcher serves two roles: deciding whether a file is
// excepted from a pattern category and deciding whether a validation rule
// applies to a file.
package glob

import (
	"regexp"
	"strings"
)

// Placeholders keep the expansion of ** out of reach of the single-* pass.
const (
	phDoubleStarSlash = "\x00"
	phDoubleStar      = "\x01"
)

// Match reports whether path matches at least one of the glob patterns.
// `*` matches any run of non-separator characters, `**` matches any run
// including separators, and `**/` also matches zero directories, so
// "**/*.example" matches both "config.env.example" and "a/b/c.example".
// An empty pattern list matches nothing. A pattern that does not compile
// is treated as non-matching rather than raising an error; pattern-category
// checks rely on this fail-open behavior.
func Match(path string, patterns []string) bool {
	for _, p := range patterns {
		re, err := compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// compile translates a glob into an anchored regular expression. Only
// literal dots are escaped; other regex metacharacters pass through, so a
// malformed pattern surfaces as a compile error for Match to swallow.
func compile(pattern string) (*regexp.Regexp, error) {
	s := strings.ReplaceAll(pattern, ".", `\.`)
	s = strings.ReplaceAll(s, "**/", phDoubleStarSlash)
	s = strings.ReplaceAll(s, "**", phDoubleStar)
	s = strings.ReplaceAll(s, "*", `[^/]*`)
	s = strings.ReplaceAll(s, phDoubleStarSlash, `(?:.*/)?`)
	s = strings.ReplaceAll(s, phDoubleStar, `.*`)
	return regexp.Compile("^" + s + "$")
}
