package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses the manifest at path. A missing or malformed
// manifest is a hard error: without it the validator cannot know what to
// protect, so callers treat any error here as fatal misconfiguration.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if m.Patterns == nil {
		m.Patterns = map[string]Category{}
	}
	if m.ValidationRules == nil {
		m.ValidationRules = map[string]Rule{}
	}
	m.Hash = fmt.Sprintf("sha256:%x", sha256.Sum256(data))

	return &m, nil
}
