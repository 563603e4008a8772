package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// profileFile is the on-disk YAML shape of a rule profile.
type profileFile struct {
	Name       string            `yaml:"name"`
	Namespaces map[string]string `yaml:"namespaces"`
	Rules      []domain.Rule     `yaml:"rules"`
}

// LoadProfile reads a YAML rule profile. Corrupt definitions (missing IDs,
// duplicate IDs, bad severities) are rejected by the domain constructor and
// surface here as errors, before any package is validated.
func LoadProfile(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	if pf.Namespaces == nil {
		pf.Namespaces = map[string]string{"mets": domain.MetsNamespace}
	}

	profile, err := domain.NewProfile(pf.Name, pf.Namespaces, pf.Rules)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return profile, nil
}
