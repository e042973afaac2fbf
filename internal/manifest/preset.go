package manifest

import "fmt"

// Preset returns the built-in starter manifest for the given name. These are
// the manifests `paictl init` writes into a fresh workspace.
func Preset(name string) (*Manifest, error) {
	switch name {
	case "standard", "":
		return standard(), nil
	case "minimal":
		return minimal(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q: valid presets are minimal, standard", name)
	}
}

func minimal() *Manifest {
	return &Manifest{
		Version:         "1.0",
		Description:     "Protected-content rules (edit to taste)",
		Patterns:        map[string]Category{},
		ValidationRules: map[string]Rule{},
	}
}

func standard() *Manifest {
	return &Manifest{
		Version:     "1.0",
		Description: "Protected-content rules for a personalized workspace",
		Patterns: map[string]Category{
			"api-keys": {
				Description: "Provider API keys and access tokens",
				Patterns: []string{
					"AKIA[0-9A-Z]{16}",
					"sk_live_[a-zA-Z0-9]+",
					"sk-[a-zA-Z0-9]{20,}",
					"ghp_[a-zA-Z0-9]{36}",
				},
				Exceptions: []string{"**/*.example"},
			},
			"private-keys": {
				Description: "PEM-encoded private key material",
				Patterns: []string{
					"-----BEGIN [A-Z ]*PRIVATE KEY-----",
				},
			},
			"personal-email": {
				Description: "Personal email addresses",
				Patterns: []string{
					`[a-zA-Z0-9._%+-]+@(gmail|googlemail|yahoo|outlook|proton|icloud)\.com`,
				},
				Exceptions: []string{"**/*.example", "**/testdata/**"},
			},
		},
		ValidationRules: map[string]Rule{
			"templates-parameterized": {
				Description:    "Identity templates must keep their substitution markers",
				Files:          []string{".pai/templates/**"},
				MustContain:    []string{"${"},
				MustNotContain: nil,
			},
		},
	}
}
