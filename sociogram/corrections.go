// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type correctionFile struct {
	Corrections []Correction `yaml:"corrections"`
}

// LoadCorrections reads a YAML correction table:
//
//	corrections:
//	  - pattern: MAKOUZI
//	    replacement: NAKOUZI
//
// An empty path returns DefaultCorrections.
func LoadCorrections(path string) ([]Correction, error) {
	if path == "" {
		return DefaultCorrections, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corrections: %w", err)
	}
	var f correctionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corrections %s: %w", path, err)
	}
	return f.Corrections, nil
}
