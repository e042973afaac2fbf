// Package redact scrubs secret-shaped content from hook payloads before
// they are echoed into an agent session transcript.
package redact

import (
	"os"
	"regexp"
	"strings"

	"github.com/dshills/paictl/internal/manifest"
)

const redacted = "[REDACTED]"

// pemPattern matches PEM key blocks across multiple lines.
var pemPattern = regexp.MustCompile(`(?s)-----BEGIN [A-Z ]+KEY-----.*?-----END [A-Z ]+KEY-----`)

// builtin holds single-line secret-detection regexes in priority order.
// These apply even when the workspace has no manifest.
var builtin = []*regexp.Regexp{
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// OpenAI / Anthropic secret keys. The boundary character is captured
	// so the replacement can re-emit it.
	regexp.MustCompile(`(^|\s|["'])sk-[a-zA-Z0-9]{20,}`),
	// Stripe live keys
	regexp.MustCompile(`sk_live_[a-zA-Z0-9]{16,}`),
	// GitHub personal access tokens
	regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`),
	// JWT tokens (three base64url segments)
	regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`),
	// Bearer tokens of at least 20 chars, shorter ones are too noisy.
	// Horizontal whitespace only: a match must not swallow a newline.
	regexp.MustCompile(`(?i)Bearer[ \t]+[A-Za-z0-9\-._~+/]{20,}=*`),
	// Inline password assignments
	regexp.MustCompile(`(?i)password[ \t]*[:=][ \t]*\S+`),
}

// Redact replaces known secret patterns in input with [REDACTED].
// Line structure is preserved: the number of newlines in the output
// always equals the number of newlines in the input.
func Redact(input string) string {
	return redactWith(input, nil)
}

// WithManifest returns a redactor that scrubs the built-in patterns plus
// every pattern category in the manifest. The manifest may be nil; its
// malformed patterns are skipped.
func WithManifest(m *manifest.Manifest) func(string) string {
	extra := compileManifest(m)
	return func(input string) string {
		return redactWith(input, extra)
	}
}

func compileManifest(m *manifest.Manifest) []*regexp.Regexp {
	if m == nil {
		return nil
	}
	var extra []*regexp.Regexp
	for _, name := range m.CategoryNames() {
		for _, pat := range m.Patterns[name].Patterns {
			re, err := regexp.Compile("(?i)" + pat)
			if err != nil {
				continue
			}
			extra = append(extra, re)
		}
	}
	return extra
}

func redactWith(input string, extra []*regexp.Regexp) string {
	// Handle PEM blocks first: replace each line within the block
	// individually so that line count is preserved.
	input = pemPattern.ReplaceAllStringFunc(input, func(match string) string {
		lines := strings.Split(match, "\n")
		for i := range lines {
			lines[i] = redacted
		}
		return strings.Join(lines, "\n")
	})

	// ${1} re-emits a captured boundary character and expands to the
	// empty string for patterns without one, so a match that starts
	// after a newline keeps that newline in place.
	for _, re := range builtin {
		input = re.ReplaceAllString(input, "${1}"+redacted)
	}
	for _, re := range extra {
		input = re.ReplaceAllString(input, redacted)
	}
	return input
}

// RedactFile reads a file, redacts its content with the built-in patterns,
// and returns the result.
func RedactFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Redact(string(data)), nil
}
