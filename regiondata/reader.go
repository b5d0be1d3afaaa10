// Package regiondata persists region definitions: only name, population
// size, density and the optional map boundary are stored. Everything else
// (population state, policies, disease) is rebuilt fresh on load.
package regiondata

import (
	"fmt"
	"os"

	"github.com/pquerna/ffjson/ffjson"
)

type RegionRecord struct {
	Name       string      `json:"name"`
	Population int         `json:"population"`
	Density    float64     `json:"density"`
	Boundary   [][]float64 `json:"boundary,omitempty"` // lat,lng pairs
}

// Validate rejects records the engine would refuse.
func (r RegionRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("region name must not be empty")
	}
	if r.Population <= 0 {
		return fmt.Errorf("region %v: population %d must be positive", r.Name, r.Population)
	}
	if r.Density < 0 || r.Density > 1 {
		return fmt.Errorf("region %v: density %v out of range [0,1]", r.Name, r.Density)
	}
	return nil
}

// LoadRegions reads a region definition file. Every record is validated and
// names must be unique; a bad file is rejected as a whole.
func LoadRegions(path string) ([]RegionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}

	var records []RegionRecord
	if err := ffjson.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse regions file %v: %w", path, err)
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[rec.Name]; dup {
			return nil, fmt.Errorf("duplicate region name %v", rec.Name)
		}
		seen[rec.Name] = struct{}{}
	}
	return records, nil
}

// SaveRegions writes the records as a JSON list.
func SaveRegions(path string, records []RegionRecord) error {
	if path == "" {
		return fmt.Errorf("regions file path must not be empty")
	}
	data, err := ffjson.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode regions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write regions file: %w", err)
	}
	return nil
}
