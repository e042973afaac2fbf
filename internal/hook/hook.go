// Package hook assembles the payload a session-start hook prints for the
// host agent to ingest.
package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// The host scans its transcript for this fixed wrapper, so the tags must
// never change shape.
const (
	openTag  = "<session-start-hook>"
	closeTag = "</session-start-hook>"
)

// Payload is one assembled session-start hook output.
type Payload struct {
	Runtime  string
	Included []string
	Skipped  []string
	Body     string
}

// Build loads each include file relative to root, concatenates their
// markdown, and applies scrub to the combined body. Missing or unreadable
// includes are skipped, never fatal: a broken hook must not stop a session
// from starting. scrub may be nil.
func Build(root string, includes []string, scrub func(string) string, log *zap.Logger) Payload {
	p := Payload{Runtime: RuntimeFromEnv(os.Getenv)}

	var sb strings.Builder
	for _, inc := range includes {
		data, err := os.ReadFile(filepath.Join(root, inc))
		if err != nil {
			p.Skipped = append(p.Skipped, inc)
			log.Debug("session-start include skipped",
				zap.String("path", inc),
				zap.Error(err))
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.TrimRight(string(data), "\n"))
		sb.WriteString("\n")
		p.Included = append(p.Included, inc)
	}

	body := sb.String()
	if scrub != nil {
		body = scrub(body)
	}
	p.Body = body
	return p
}

// Format renders the payload between the wrapper tags, leading with the
// detected runtime.
func (p Payload) Format() string {
	var sb strings.Builder
	sb.WriteString(openTag + "\n")
	fmt.Fprintf(&sb, "runtime: %s\n", p.Runtime)
	if p.Body != "" {
		sb.WriteString("\n")
		sb.WriteString(p.Body)
		if !strings.HasSuffix(p.Body, "\n") {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(closeTag + "\n")
	return sb.String()
}

// RuntimeFromEnv names the host runtime by inspecting environment
// variables. PAI_RUNTIME overrides detection outright; otherwise matching
// is substring-based so variant values such as "vscode-insiders" still
// count.
func RuntimeFromEnv(getenv func(string) string) string {
	if rt := getenv("PAI_RUNTIME"); rt != "" {
		return rt
	}
	switch {
	case getenv("CLAUDECODE") != "" || getenv("CLAUDE_CODE_ENTRYPOINT") != "":
		return "claude-code"
	case strings.Contains(strings.ToLower(getenv("TERM_PROGRAM")), "vscode"):
		return "vscode"
	case getenv("CURSOR_TRACE_ID") != "":
		return "cursor"
	default:
		return "terminal"
	}
}
